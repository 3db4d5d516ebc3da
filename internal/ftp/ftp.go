// Package ftp implements the minimal FTP client this core needs to deliver
// an encoded RAP file to a roaming partner's inbound directory: connect,
// authenticate, switch to binary mode, open a passive data connection, and
// STOR the payload.
package ftp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/textproto"
	"regexp"
	"strconv"
	"time"
)

// DefaultPort is the port FTP control connections use when a Settings value
// does not specify one, matching the well-known IANA assignment.
const DefaultPort = 21

// Uploader is the external collaborator that delivers an encoded RAP file to
// a recipient's FTP inbox.
type Uploader interface {
	Upload(ctx context.Context, addr string, cred Credentials, remotePath string, data []byte) error
}

// Credentials authenticates an FTP session.
type Credentials struct {
	Username string
	Password string
}

// Client is the production Uploader, a minimal passive-mode FTP client
// built directly on net.textproto rather than a third-party FTP library, so
// the wire exchange stays inspectable.
type Client struct {
	// DialTimeout bounds both the control and data connection dials. Zero
	// means no timeout.
	DialTimeout time.Duration
}

// NewClient returns a Client with a five second dial timeout.
func NewClient() *Client {
	return &Client{DialTimeout: 5 * time.Second}
}

var pasvPattern = regexp.MustCompile(`\((\d+),(\d+),(\d+),(\d+),(\d+),(\d+)\)`)

// Upload dials addr (host:port, port defaulting to DefaultPort if omitted),
// authenticates with cred, and stores data at remotePath. addr's failure to
// resolve, authenticate, or complete the STOR all surface as a plain error;
// the caller (internal/rapfile) is responsible for classifying it.
func (c *Client) Upload(ctx context.Context, addr string, cred Credentials, remotePath string, data []byte) error {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, strconv.Itoa(DefaultPort))
	}
	dialer := net.Dialer{Timeout: c.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("ftp: dial %s: %w", addr, err)
	}
	text := textproto.NewConn(conn)
	defer text.Close()

	if _, _, err := text.ReadResponse(220); err != nil {
		return fmt.Errorf("ftp: greeting: %w", err)
	}
	if err := command(text, 331, "USER %s", cred.Username); err != nil {
		return err
	}
	if err := command(text, 230, "PASS %s", cred.Password); err != nil {
		return err
	}
	if err := command(text, 200, "TYPE I"); err != nil {
		return err
	}

	dataAddr, err := passiveDataAddr(text)
	if err != nil {
		return err
	}
	dataConn, err := dialer.DialContext(ctx, "tcp", dataAddr)
	if err != nil {
		return fmt.Errorf("ftp: dial data connection %s: %w", dataAddr, err)
	}

	id, err := text.Cmd("STOR %s", remotePath)
	if err != nil {
		dataConn.Close()
		return fmt.Errorf("ftp: send STOR: %w", err)
	}
	text.StartResponse(id)
	_, _, err = text.ReadResponse(150)
	text.EndResponse(id)
	if err != nil {
		dataConn.Close()
		return fmt.Errorf("ftp: STOR not accepted: %w", err)
	}

	_, writeErr := dataConn.Write(data)
	closeErr := dataConn.Close()
	if writeErr != nil {
		return fmt.Errorf("ftp: write payload: %w", writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("ftp: close data connection: %w", closeErr)
	}

	if _, _, err := text.ReadResponse(226); err != nil {
		return fmt.Errorf("ftp: transfer not confirmed: %w", err)
	}
	_, _ = text.Cmd("QUIT") // best-effort, response not awaited
	return nil
}

func command(text *textproto.Conn, expectCode int, format string, args ...interface{}) error {
	id, err := text.Cmd(format, args...)
	if err != nil {
		return fmt.Errorf("ftp: send %q: %w", fmt.Sprintf(format, args...), err)
	}
	text.StartResponse(id)
	defer text.EndResponse(id)
	if _, _, err := text.ReadResponse(expectCode); err != nil {
		return fmt.Errorf("ftp: command %q: %w", fmt.Sprintf(format, args...), err)
	}
	return nil
}

// passiveDataAddr issues PASV and parses the h1,h2,h3,h4,p1,p2 tuple RFC 959
// specifies into a dialable host:port string.
func passiveDataAddr(text *textproto.Conn) (string, error) {
	id, err := text.Cmd("PASV")
	if err != nil {
		return "", fmt.Errorf("ftp: send PASV: %w", err)
	}
	text.StartResponse(id)
	_, msg, err := text.ReadResponse(227)
	text.EndResponse(id)
	if err != nil {
		return "", fmt.Errorf("ftp: PASV: %w", err)
	}
	m := pasvPattern.FindStringSubmatch(msg)
	if m == nil {
		return "", errors.New("ftp: could not parse PASV response")
	}
	p1, _ := strconv.Atoi(m[5])
	p2, _ := strconv.Atoi(m[6])
	port := p1*256 + p2
	host := fmt.Sprintf("%s.%s.%s.%s", m[1], m[2], m[3], m[4])
	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}
