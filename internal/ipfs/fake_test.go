package ipfs

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeKubo answers the three RPC commands the client uses.
type fakeKubo struct {
	mu      sync.Mutex
	blocks  map[string][]byte
	records map[string][]byte
	queries map[string][]string

	// putKey overrides the key returned by block/put when set.
	putKey string
	// failPut makes routing/put answer with an error.
	failPut bool
}

func newFakeKubo(t *testing.T) (*fakeKubo, *httptest.Server) {
	t.Helper()
	f := &fakeKubo{
		blocks:  map[string][]byte{},
		records: map[string][]byte{},
		queries: map[string][]string{},
	}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeKubo) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Method != http.MethodPost {
		http.Error(w, "405 - Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	f.queries[r.URL.Path] = append(f.queries[r.URL.Path], r.URL.RawQuery)

	switch r.URL.Path {
	case "/api/v0/block/put":
		data := formFile(w, r)
		if data == nil {
			return
		}
		id, err := DocumentCID(data)
		if err != nil {
			kuboError(w, err.Error())
			return
		}
		key := id.String()
		if f.putKey != "" {
			key = f.putKey
		}
		f.blocks[key] = data
		writeJSON(w, map[string]any{"Key": key, "Size": len(data)})
	case "/api/v0/routing/get":
		rec, ok := f.records[r.URL.Query().Get("arg")]
		if !ok {
			kuboError(w, "routing: not found")
			return
		}
		writeJSON(w, map[string]any{"Extra": base64.StdEncoding.EncodeToString(rec), "Type": 5})
	case "/api/v0/routing/put":
		if f.failPut {
			kuboError(w, "can't put a record with lower sequence")
			return
		}
		data := formFile(w, r)
		if data == nil {
			return
		}
		f.records[r.URL.Query().Get("arg")] = data
		writeJSON(w, map[string]any{"ID": "", "Type": 5})
	default:
		http.NotFound(w, r)
	}
}

func formFile(w http.ResponseWriter, r *http.Request) []byte {
	file, _, err := r.FormFile("file")
	if err != nil {
		kuboError(w, "file argument 'data' is required")
		return nil
	}
	defer file.Close()
	b, err := io.ReadAll(file)
	if err != nil {
		kuboError(w, err.Error())
		return nil
	}
	return b
}

func kuboError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]any{"Message": msg, "Code": 0, "Type": "error"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
