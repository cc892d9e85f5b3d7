package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("dpgpid/ipfs")

// DefaultAPI is kubo's default RPC listen address.
const DefaultAPI = "http://127.0.0.1:5001"

// Client is a minimal kubo RPC client.
type Client struct {
	Base string
	HTTP *http.Client
	// Timeout bounds each RPC through its context. Zero means no bound.
	Timeout time.Duration

	// RecordLifetime is how long published IPNS records stay valid.
	RecordLifetime time.Duration
	// RecordTTL is the cache hint placed in IPNS records.
	RecordTTL time.Duration

	now func() time.Time
}

// New returns a client for the node at base. timeout bounds every RPC, both
// as a context deadline and as the HTTP client timeout.
func New(base string, timeout time.Duration) *Client {
	if base == "" {
		base = DefaultAPI
	}
	return &Client{
		Base:           strings.TrimRight(base, "/"),
		HTTP:           &http.Client{Timeout: timeout},
		Timeout:        timeout,
		RecordLifetime: 48 * time.Hour,
		RecordTTL:      time.Hour,
		now:            time.Now,
	}
}

// APIError is a non-2xx answer from the node.
type APIError struct {
	Command string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("kubo %s: %s", e.Command, http.StatusText(e.Status))
	}
	return fmt.Sprintf("kubo %s: %s", e.Command, e.Message)
}

// gateway reports statuses that come from a proxy in front of the node rather
// than from the node itself.
func (e *APIError) gateway() bool {
	return e.Status == http.StatusBadGateway ||
		e.Status == http.StatusServiceUnavailable ||
		e.Status == http.StatusGatewayTimeout
}

func (e *APIError) notFound() bool {
	return strings.Contains(strings.ToLower(e.Message), "not found")
}

// post calls /api/v0/<command>. A non-nil file is sent as the multipart
// "file" field, the way kubo expects command inputs.
func (c *Client) post(ctx context.Context, command string, args url.Values, file []byte, out any) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	u := c.Base + "/api/v0/" + command
	if len(args) > 0 {
		u += "?" + args.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	if file != nil {
		buf := new(bytes.Buffer)
		mw := multipart.NewWriter(buf)
		fw, err := mw.CreateFormFile("file", "file")
		if err != nil {
			return err
		}
		if _, err := fw.Write(file); err != nil {
			return err
		}
		if err := mw.Close(); err != nil {
			return err
		}
		body = buf
		contentType = mw.FormDataContentType()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	log.Debugf("POST %s", u)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return decodeAPIError(command, resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("kubo %s: %w: %v", command, errBadResponse, err)
	}
	return nil
}

func decodeAPIError(command string, resp *http.Response) error {
	apiErr := &APIError{Command: command, Status: resp.StatusCode}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	var msg struct {
		Message string `json:"Message"`
	}
	if json.Unmarshal(b, &msg) == nil && msg.Message != "" {
		apiErr.Message = msg.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(b))
	}
	return apiErr
}

// errBadResponse marks answers the node sent but this client cannot use.
var errBadResponse = errors.New("unexpected response")

// isUnreachable separates transport failures from refusals by the node.
func isUnreachable(err error) bool {
	if errors.Is(err, errBadResponse) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.gateway()
	}
	return true
}
