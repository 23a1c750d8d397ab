package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nicu-progress/internal/adapters/auth/jwtauth"
	"nicu-progress/internal/router"
)

func TestHTTP_EndToEnd_PatientEntriesProgress(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	user := "nurse-1"

	// 1) Sin usuario => 401
	{
		st, _ := doReq(t, ts.URL, "GET", "/patients", "", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without user, got %d", st)
		}
	}

	// 2) Alta de paciente
	patientID := createPatient(t, ts.URL, user, map[string]any{
		"patient_id":  "MRN-001",
		"name":        "Baby A",
		"ga":          "28",
		"dob":         "2024-03-01",
		"sex":         "female",
		"aga_sga_lga": "AGA",
	})

	// 3) Sin entradas => no_data
	{
		st, body := doReq(t, ts.URL, "GET", "/patients/"+patientID+"/progress", user, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 no_data, got %d body=%s", st, string(body))
		}
		var resp struct {
			NoData bool `json:"no_data"`
		}
		_ = json.Unmarshal(body, &resp)
		if !resp.NoData {
			t.Fatalf("expected no_data=true, body=%s", string(body))
		}
	}

	// 4) Entradas: DOL/PMA calculados por el servidor, lo enviado se ignora
	var firstEntryID string
	{
		st, body := doReq(t, ts.URL, "POST", "/patients/"+patientID+"/entries", user, "", map[string]any{
			"date":         "2024-03-08",
			"weight":       1.2,
			"cal":          "110",
			"dol":          99,
			"type_of_milk": "EBM",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create entry, got %d body=%s", st, string(body))
		}
		var resp map[string]any
		_ = json.Unmarshal(body, &resp)
		if resp["dol"] != float64(8) || resp["pma"] != float64(29.1) {
			t.Fatalf("expected dol=8 pma=29.1, got dol=%v pma=%v", resp["dol"], resp["pma"])
		}
		firstEntryID, _ = resp["id"].(string)
	}
	for _, e := range []map[string]any{
		{"date": "2024-03-10", "weight": "1.3", "type_of_milk": "PDHM"},
		{"date": "2024-03-09", "weight": nil, "kmc": "4"},
	} {
		st, body := doReq(t, ts.URL, "POST", "/patients/"+patientID+"/entries", user, "", e)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create entry, got %d body=%s", st, string(body))
		}
	}

	// 5) Valor no numérico => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/patients/"+patientID+"/entries", user, "", map[string]any{
			"date": "2024-03-11", "weight": "heavy",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for non numeric weight, got %d", st)
		}
	}

	// 6) Serie diaria ordenada por fecha
	{
		st, body := doReq(t, ts.URL, "GET", "/patients/"+patientID+"/progress?aggregation=daily", user, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 progress, got %d body=%s", st, string(body))
		}
		var resp struct {
			Level  string `json:"level"`
			Points []struct {
				DateString string   `json:"dateString"`
				Name       string   `json:"name"`
				Weight     *float64 `json:"weight"`
			} `json:"points"`
			Metrics []struct {
				Value string `json:"value"`
			} `json:"metrics"`
			Summary struct {
				DOL *int   `json:"dol"`
				PMA string `json:"pma"`
			} `json:"summary"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("decode progress: %v body=%s", err, string(body))
		}
		if len(resp.Points) != 3 {
			t.Fatalf("expected 3 points, got %d", len(resp.Points))
		}
		if resp.Points[0].DateString != "2024-03-08" || resp.Points[2].DateString != "2024-03-10" {
			t.Fatalf("points not sorted: %+v", resp.Points)
		}
		if resp.Points[0].Name != "3/8" {
			t.Fatalf("expected axis label 3/8, got %s", resp.Points[0].Name)
		}
		if resp.Points[1].Weight != nil {
			t.Fatalf("empty weight must project to null")
		}
		if resp.Summary.DOL == nil || *resp.Summary.DOL != 10 || resp.Summary.PMA != "29.4" {
			t.Fatalf("unexpected summary: %+v", resp.Summary)
		}
		keys := map[string]bool{}
		for _, m := range resp.Metrics {
			keys[m.Value] = true
		}
		if !keys["weight"] || !keys["kmc"] || !keys["dol"] || keys["iron"] {
			t.Fatalf("unexpected metrics: %+v", resp.Metrics)
		}
	}

	// 7) Serie semanal: un solo bucket (DOL 8..10 => semana 2)
	{
		st, body := doReq(t, ts.URL, "GET", "/patients/"+patientID+"/progress?aggregation=weekly", user, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 weekly, got %d body=%s", st, string(body))
		}
		var resp struct {
			Points []struct {
				Weight *float64 `json:"weight"`
			} `json:"points"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Points) != 1 || resp.Points[0].Weight == nil || *resp.Points[0].Weight != 1.25 {
			t.Fatalf("unexpected weekly points: %s", string(body))
		}
	}

	// 8) Agregación inválida => 400
	{
		st, _ := doReq(t, ts.URL, "GET", "/patients/"+patientID+"/progress?aggregation=yearly", user, "", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown aggregation, got %d", st)
		}
	}

	// 9) Detalle con entradas anidadas
	{
		st, body := doReq(t, ts.URL, "GET", "/patients/"+patientID, user, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get patient, got %d body=%s", st, string(body))
		}
		var resp struct {
			Entries []map[string]any `json:"entries"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Entries) != 3 || resp.Entries[0]["id"] != firstEntryID {
			t.Fatalf("unexpected nested entries: %s", string(body))
		}
	}

	// 10) Borrar paciente borra sus entradas
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/patients/"+patientID, user, "", nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete patient, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/patients/"+patientID+"/entries/"+firstEntryID, user, "", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for deleted entry, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/patients/"+patientID+"/progress", user, "", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 progress of deleted patient, got %d", st)
		}
	}
}

func TestHTTP_EntryRejectedWhenPatientDOBInvalid(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	user := "nurse-1"
	patientID := createPatient(t, ts.URL, user, map[string]any{
		"patient_id": "MRN-002",
		"name":       "Baby B",
		"ga":         "30.2",
		"dob":        "2024-02-01",
	})

	// Entrada anterior al nacimiento: DOL <= 0 se calcula igual.
	st, body := doReq(t, ts.URL, "POST", "/patients/"+patientID+"/entries", user, "", map[string]any{
		"date": "2024-01-31", "weight": "1.0",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "POST", "/patients", user, "", map[string]any{
		"patient_id": "MRN-003", "name": "Baby C", "ga": "abc", "dob": "2024-02-01",
	})
	if st != http.StatusBadRequest || !strings.Contains(string(body), "ga must be a number") {
		t.Fatalf("expected 400 for invalid ga, got %d body=%s", st, string(body))
	}

	st, _ = doReq(t, ts.URL, "POST", "/patients", user, "", map[string]any{
		"patient_id": "MRN-002", "name": "Dup", "ga": "30", "dob": "2024-02-01",
	})
	if st != http.StatusConflict {
		t.Fatalf("expected 409 duplicate patient_id, got %d", st)
	}
}

func TestHTTP_TokenFlow(t *testing.T) {
	iss, err := jwtauth.NewIssuer(jwtauth.Config{Secret: "test-secret", AccessTTL: time.Minute, RefreshTTL: time.Hour})
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	hash, err := jwtauth.HashPassword("pa55")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: iss,
		Tokens:       iss,
		Credentials:  jwtauth.NewCredentials(map[string]string{"nurse.ana": hash}),
	}))
	defer ts.Close()

	// Login inválido
	st, _ := doReq(t, ts.URL, "POST", "/token", "", "", map[string]any{"username": "nurse.ana", "password": "nope"})
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 bad password, got %d", st)
	}

	st, body := doReq(t, ts.URL, "POST", "/token", "", "", map[string]any{"username": "nurse.ana", "password": "pa55"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
	}
	var pair struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	_ = json.Unmarshal(body, &pair)

	// El header de debug no vale con JWT configurado
	st, _ = doReq(t, ts.URL, "GET", "/patients", "nurse.ana", "", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 with debug header in jwt mode, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "GET", "/patients", "", pair.Access, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 with access token, got %d", st)
	}

	// Refresh token como Bearer => 401
	st, _ = doReq(t, ts.URL, "GET", "/patients", "", pair.Refresh, nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 with refresh token as bearer, got %d", st)
	}

	st, body = doReq(t, ts.URL, "POST", "/token/refresh", "", "", map[string]any{"refresh": pair.Refresh})
	if st != http.StatusOK {
		t.Fatalf("expected 200 refresh, got %d body=%s", st, string(body))
	}
	var refreshed struct {
		Access string `json:"access"`
	}
	_ = json.Unmarshal(body, &refreshed)
	st, _ = doReq(t, ts.URL, "GET", "/patients", "", refreshed.Access, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 with refreshed token, got %d", st)
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/health", "", "", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health: %d %s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/metrics", "", "", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "nicu_progress_http_requests_total") {
		t.Fatalf("unexpected metrics: %d", st)
	}
}

func createPatient(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/patients", userID, "", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create patient, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create patient: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID, bearer string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
