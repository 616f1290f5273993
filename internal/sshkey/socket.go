package sshkey

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/term"

	"github.com/nvinuesa/gguser/internal/security"
)

// PassphraseFunc asks the user for a key passphrase. The caller zeroes the
// returned bytes.
type PassphraseFunc func(prompt string) (*security.SecureBytes, error)

// TerminalPrompt reads a passphrase from in without echo, writing the prompt
// to out.
func TerminalPrompt(in *os.File, out io.Writer) PassphraseFunc {
	return func(prompt string) (*security.SecureBytes, error) {
		fd := int(in.Fd())
		if !term.IsTerminal(fd) {
			return nil, errors.New("cannot prompt for passphrase: stdin is not a terminal")
		}
		fmt.Fprint(out, prompt)
		passphrase, err := term.ReadPassword(fd)
		fmt.Fprintln(out) // newline after passphrase
		if err != nil {
			return nil, err
		}
		return security.FromBytes(passphrase), nil
	}
}

// SocketAgent adds keys over the agent protocol on a unix socket.
type SocketAgent struct {
	socket string
	prompt PassphraseFunc
	log    logrus.FieldLogger
}

// NewSocketAgent returns an agent talking to socket. An empty socket falls
// back to $SSH_AUTH_SOCK at call time.
func NewSocketAgent(socket string, prompt PassphraseFunc, logger logrus.FieldLogger) *SocketAgent {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &SocketAgent{socket: socket, prompt: prompt, log: logger}
}

// Add parses the private key at path, asking for a passphrase if it is
// encrypted, and adds it to the agent with the key's comment.
func (a *SocketAgent) Add(ctx context.Context, path string) error {
	socket := a.socket
	if socket == "" {
		socket = os.Getenv("SSH_AUTH_SOCK")
	}
	if socket == "" {
		return ErrNoAgent
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading key: %w", err)
	}
	defer security.Wipe(&data)

	key, err := a.parse(path, data)
	if err != nil {
		return err
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", socket)
	if err != nil {
		return fmt.Errorf("connecting to agent: %w", err)
	}
	defer conn.Close()

	comment := Comment(path)
	a.log.WithField("socket", socket).Debugf("adding %s to agent", comment)
	if err := agent.NewClient(conn).Add(agent.AddedKey{PrivateKey: key, Comment: comment}); err != nil {
		return fmt.Errorf("adding key to agent: %w", err)
	}
	return nil
}

func (a *SocketAgent) parse(path string, data []byte) (any, error) {
	key, err := ssh.ParseRawPrivateKey(data)
	if err == nil {
		return key, nil
	}

	var missing *ssh.PassphraseMissingError
	if !errors.As(err, &missing) {
		return nil, &KeyError{Path: path, Reason: "cannot parse private key", Err: err}
	}
	if a.prompt == nil {
		return nil, &KeyError{Path: path, Reason: "key is encrypted and no passphrase prompt is available"}
	}

	passphrase, err := a.prompt(fmt.Sprintf("Enter passphrase for %s: ", path))
	if err != nil {
		return nil, &KeyError{Path: path, Reason: "reading passphrase", Err: err}
	}
	defer passphrase.Zero()

	key, err = ssh.ParseRawPrivateKeyWithPassphrase(data, passphrase.Bytes())
	if err != nil {
		if errors.Is(err, x509.IncorrectPasswordError) {
			return nil, &KeyError{Path: path, Reason: "wrong passphrase", Err: err}
		}
		return nil, &KeyError{Path: path, Reason: "cannot parse private key", Err: err}
	}
	return key, nil
}

var _ Agent = (*SocketAgent)(nil)
