// Package recordsapi es el cliente HTTP de la API de nicu-progress.
package recordsapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"nicu-progress/internal/domain/progress"
	"nicu-progress/internal/platform/httpclient"
	"nicu-progress/internal/platform/logger"
	"nicu-progress/internal/ports/auth"
)

var (
	ErrNotLoggedIn    = errors.New("recordsapi: not logged in")
	ErrSessionExpired = errors.New("recordsapi: session expired, login again")
)

type Client struct {
	http    *httpclient.Client
	session *Session
	log     logger.Logger

	// refreshMu serializa los refresh: varios 401 simultáneos hacen un solo POST.
	refreshMu sync.Mutex
}

func NewClient(baseURL string, timeout time.Duration, session *Session, log logger.Logger) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = NewSession()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{http: hc, session: session, log: log}, nil
}

func (c *Client) Session() *Session { return c.session }

// Patient es el paciente tal como lo devuelve GET /patients/{id}.
type Patient struct {
	ID        string            `json:"id"`
	PatientID string            `json:"patient_id"`
	Name      string            `json:"name"`
	GA        string            `json:"ga"`
	Weight    string            `json:"weight"`
	AgaSgaLga string            `json:"aga_sga_lga"`
	Sex       string            `json:"sex"`
	DOB       string            `json:"dob"`
	TOB       string            `json:"tob"`
	Entries   []progress.Record `json:"entries,omitempty"`
}

func (c *Client) Login(ctx context.Context, username, password string) error {
	var pair auth.TokenPair
	err := c.http.DoJSON(ctx, http.MethodPost, "/token", nil,
		map[string]string{"username": username, "password": password}, &pair)
	if err != nil {
		return err
	}
	c.session.Set(pair)
	return nil
}

func (c *Client) ListPatients(ctx context.Context) ([]Patient, error) {
	var out []Patient
	if err := c.do(ctx, http.MethodGet, "/patients", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPatient devuelve el paciente con sus entradas crudas.
func (c *Client) GetPatient(ctx context.Context, id string) (Patient, error) {
	var out Patient
	if err := c.do(ctx, http.MethodGet, "/patients/"+url.PathEscape(id), nil, &out); err != nil {
		return Patient{}, err
	}
	return out, nil
}

func (c *Client) CreateEntry(ctx context.Context, patientID string, rec progress.Record) (progress.Record, error) {
	var out progress.Record
	if err := c.do(ctx, http.MethodPost, "/patients/"+url.PathEscape(patientID)+"/entries", rec, &out); err != nil {
		return progress.Record{}, err
	}
	return out, nil
}

// do agrega el Bearer token. Ante un 401 intenta un refresh y reintenta una
// sola vez; si el refresh falla la sesión se cierra.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	tokens := c.session.Tokens()
	if tokens.Access == "" {
		return ErrNotLoggedIn
	}

	err := c.http.DoJSON(ctx, method, path, bearer(tokens.Access), in, out)
	if !isUnauthorized(err) {
		return err
	}

	access, rerr := c.refreshAccess(ctx, tokens.Access)
	if rerr != nil {
		return rerr
	}
	return c.http.DoJSON(ctx, method, path, bearer(access), in, out)
}

// refreshAccess renueva el access token. Si otra goroutine ya lo renovó
// (el token actual difiere del que falló) se reutiliza el nuevo.
func (c *Client) refreshAccess(ctx context.Context, failed string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	tokens := c.session.Tokens()
	if tokens.Access != "" && tokens.Access != failed {
		return tokens.Access, nil
	}
	if tokens.Refresh == "" {
		c.session.Logout()
		return "", ErrSessionExpired
	}

	var resp struct {
		Access string `json:"access"`
	}
	err := c.http.DoJSON(ctx, http.MethodPost, "/token/refresh", nil,
		map[string]string{"refresh": tokens.Refresh}, &resp)
	if err != nil || resp.Access == "" {
		c.log.Warn("token refresh failed, logging out", map[string]any{"error": fmt.Sprint(err)})
		c.session.Logout()
		return "", ErrSessionExpired
	}

	c.session.SetAccess(resp.Access)
	return resp.Access, nil
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func isUnauthorized(err error) bool {
	return httpclient.StatusCode(err) == http.StatusUnauthorized
}
