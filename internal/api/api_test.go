package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/slideplay/internal/player"
	"github.com/ivlev/slideplay/internal/scenario"
	"github.com/ivlev/slideplay/internal/store"
	"github.com/ivlev/slideplay/internal/store/file"
	"github.com/ivlev/slideplay/internal/store/storetest"
)

func newServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()
	s, err := file.Open(t.TempDir(), file.JSON)
	require.NoError(t, err)
	h := NewHandler(s, Options{
		AllowedOrigin:      "http://localhost:5173",
		TimeUpdateInterval: 10 * time.Millisecond,
		TransitionDuration: 20 * time.Millisecond,
		SettleDelay:        5 * time.Millisecond,
		LoadingDelay:       5 * time.Millisecond,
	})
	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)
	return srv, s
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestPutGetRoundTrip(t *testing.T) {
	srv, _ := newServer(t)
	data, err := scenario.Marshal(storetest.Document("Api"))
	require.NoError(t, err)

	resp := do(t, http.MethodPut, srv.URL+"/api/v1/scenarios/lesson-1", string(data))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sum store.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sum))
	assert.Equal(t, "lesson-1", sum.ID)
	assert.Equal(t, 2, sum.Slides)

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/scenarios/lesson-1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(got))

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/scenarios/lesson-1/export", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="lesson-1.json"`, resp.Header.Get("Content-Disposition"))

	resp = do(t, http.MethodGet, srv.URL+"/api/v1/scenarios", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []store.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "Api", list[0].Title)
}

func TestPutAcceptsYAML(t *testing.T) {
	srv, s := newServer(t)
	body := "version: \"1.0\"\ntitle: Y\nslides:\n  - {id: a, type: title, order: 0, title: Hi}\n"

	resp := do(t, http.MethodPut, srv.URL+"/api/v1/scenarios/y", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc, err := s.Load(context.Background(), "y")
	require.NoError(t, err)
	assert.Equal(t, "Hi", doc.Slides[0].Content.(*scenario.TitleContent).Title)
}

func TestErrors(t *testing.T) {
	srv, _ := newServer(t)

	tests := []struct {
		name, method, path, body string
		status                   int
	}{
		{"missing", http.MethodGet, "/api/v1/scenarios/nope", "", http.StatusNotFound},
		{"invalid json", http.MethodPut, "/api/v1/scenarios/bad", `{"version":`, http.StatusBadRequest},
		{"no slides", http.MethodPut, "/api/v1/scenarios/bad", `{"version":"1.0","title":"t","slides":[]}`, http.StatusBadRequest},
		{"future version", http.MethodPut, "/api/v1/scenarios/bad", `{"version":"3.0","title":"t","slides":[{"id":"a","type":"title","order":0}]}`, http.StatusBadRequest},
		{"bad id", http.MethodPut, "/api/v1/scenarios/.hidden", `{"version":"1.0","title":"t","slides":[{"id":"a","type":"title","order":0}]}`, http.StatusBadRequest},
		{"delete missing", http.MethodDelete, "/api/v1/scenarios/nope", "", http.StatusNotFound},
		{"wrong method", http.MethodPost, "/api/v1/scenarios/x", "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, tt.method, srv.URL+tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestDelete(t *testing.T) {
	srv, s := newServer(t)
	require.NoError(t, s.Save(context.Background(), "gone", storetest.Document("Gone")))

	resp := do(t, http.MethodDelete, srv.URL+"/api/v1/scenarios/gone", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	_, err := s.Load(context.Background(), "gone")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCORS(t *testing.T) {
	srv, _ := newServer(t)
	resp := do(t, http.MethodOptions, srv.URL+"/api/v1/scenarios", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func readMessage(t *testing.T, conn *websocket.Conn) liveMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg liveMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestLivePlayback(t *testing.T) {
	srv, s := newServer(t)
	require.NoError(t, s.Save(context.Background(), "live", storetest.Document("Live")))

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/scenarios/live/play"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	first := readMessage(t, conn)
	assert.Equal(t, "slide", first.Type)
	assert.Equal(t, 0, first.Index)
	require.NotNil(t, first.Frame)
	assert.Equal(t, "intro", first.Frame.SlideID)

	require.NoError(t, conn.WriteJSON(player.Command{Name: "next"}))
	second := readMessage(t, conn)
	assert.Equal(t, "slide", second.Type)
	assert.Equal(t, 1, second.Index)

	require.NoError(t, conn.WriteJSON(player.Command{Name: "bogus"}))
	assert.Equal(t, "error", readMessage(t, conn).Type)

	// wait out the transition so the last Next is accepted
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, conn.WriteJSON(player.Command{Name: "next"}))
	done := readMessage(t, conn)
	assert.Equal(t, "complete", done.Type)
	require.NotNil(t, done.Result)
	assert.Equal(t, []int{0, 1}, done.Result.CompletedSlides)
}

func TestLiveMissingScenario(t *testing.T) {
	srv, _ := newServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/scenarios/none/play"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
