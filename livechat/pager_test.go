package livechat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type archiveServer struct {
	t        *testing.T
	requests []ListArchivesRequest
	headers  []http.Header
	respond  func(call int, req ListArchivesRequest) (int, any)
}

func (s *archiveServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req ListArchivesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.t.Errorf("decode request: %v", err)
	}
	s.requests = append(s.requests, req)
	s.headers = append(s.headers, r.Header.Clone())

	status, body := s.respond(len(s.requests), req)
	w.WriteHeader(status)
	if raw, ok := body.(string); ok {
		w.Write([]byte(raw))
		return
	}
	json.NewEncoder(w).Encode(body)
}

func newTestClient(t *testing.T, srv *archiveServer) (Client, func()) {
	ts := httptest.NewServer(srv)
	client := NewClient(Config{APIURL: ts.URL, Policy: FetchPolicy{Timeout: 5 * time.Second}}, http.Client{})
	return client, ts.Close
}

func testRange() DateRange {
	r, _ := NewDateRange("2024-01-01", "2024-01-02", time.Now())
	return r
}

var testCreds = Credentials{AccountID: "acc-1", Token: "dal:abcdefghijklmnopqrstu"}

func chats(ids ...string) []ChatRecord {
	records := make([]ChatRecord, 0, len(ids))
	for _, id := range ids {
		records = append(records, ChatRecord{Thread: &Thread{ID: id}})
	}
	return records
}

func drain(ctx context.Context, p *Pager) ([]string, error) {
	var ids []string
	for p.Next(ctx) {
		for _, c := range p.Chats() {
			ids = append(ids, c.Thread.ID)
		}
	}
	return ids, p.Err()
}

func TestPager_FollowsCursorUntilEmptyPage(t *testing.T) {
	srv := &archiveServer{t: t, respond: func(call int, req ListArchivesRequest) (int, any) {
		switch call {
		case 1:
			return http.StatusOK, ListArchivesResponse{Chats: chats("t1", "t2"), NextPageID: "cursor-2"}
		default:
			return http.StatusOK, ListArchivesResponse{}
		}
	}}
	client, closeFn := newTestClient(t, srv)
	defer closeFn()

	ids, err := drain(context.Background(), NewPager(&client, testCreds, testRange(), 100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "t1" || ids[1] != "t2" {
		t.Errorf("Expected [t1 t2], got %v", ids)
	}
	if len(srv.requests) != 2 {
		t.Fatalf("Expected 2 requests, got %d", len(srv.requests))
	}
	if srv.requests[0].PageID != "" {
		t.Errorf("Expected no page_id on first request, got %q", srv.requests[0].PageID)
	}
	if srv.requests[1].PageID != "cursor-2" {
		t.Errorf("Expected page_id cursor-2, got %q", srv.requests[1].PageID)
	}
	if srv.requests[0].Limit != 100 {
		t.Errorf("Expected limit 100, got %d", srv.requests[0].Limit)
	}
	if srv.requests[0].Filters.From != "2024-01-01T00:00:00.000000Z" || srv.requests[0].Filters.To != "2024-01-02T23:59:59.000000Z" {
		t.Errorf("unexpected filters %+v", srv.requests[0].Filters)
	}
}

func TestPager_LogsFoundChats(t *testing.T) {
	var buf bytes.Buffer
	previous, previousLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(previousLevel)
	}()

	srv := &archiveServer{t: t, respond: func(call int, req ListArchivesRequest) (int, any) {
		return http.StatusOK, ListArchivesResponse{Chats: chats("t1"), FoundChats: 42}
	}}
	client, closeFn := newTestClient(t, srv)
	defer closeFn()

	if _, err := drain(context.Background(), NewPager(&client, testCreds, testRange(), 100)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"found_chats":42`) {
		t.Errorf("Expected found_chats in page log, got %s", buf.String())
	}
}

func TestPager_StopsWithoutNextPageID(t *testing.T) {
	srv := &archiveServer{t: t, respond: func(call int, req ListArchivesRequest) (int, any) {
		return http.StatusOK, ListArchivesResponse{Chats: chats("only")}
	}}
	client, closeFn := newTestClient(t, srv)
	defer closeFn()

	pager := NewPager(&client, testCreds, testRange(), 100)
	ids, err := drain(context.Background(), pager)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 1 || len(srv.requests) != 1 {
		t.Errorf("Expected one page and one request, got ids=%v requests=%d", ids, len(srv.requests))
	}
	if pager.Next(context.Background()) {
		t.Error("Expected pager to stay done")
	}
}

func TestPager_SendsAuthAndRegionHeaders(t *testing.T) {
	srv := &archiveServer{t: t, respond: func(call int, req ListArchivesRequest) (int, any) {
		return http.StatusOK, ListArchivesResponse{}
	}}
	client, closeFn := newTestClient(t, srv)
	defer closeFn()

	if _, err := drain(context.Background(), NewPager(&client, testCreds, testRange(), 100)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h := srv.headers[0]
	if got, want := h.Get("Authorization"), testCreds.AuthorizationHeader(); got != want {
		t.Errorf("Authorization mismatch: got %q want %q", got, want)
	}
	if got := h.Get("X-Region"); got != "dal" {
		t.Errorf("Expected X-Region dal, got %q", got)
	}
	if got := h.Get("Content-Type"); got != "application/json" {
		t.Errorf("Expected JSON content type, got %q", got)
	}
}

func TestPager_OmitsRegionHeaderWithoutPrefix(t *testing.T) {
	srv := &archiveServer{t: t, respond: func(call int, req ListArchivesRequest) (int, any) {
		return http.StatusOK, ListArchivesResponse{}
	}}
	client, closeFn := newTestClient(t, srv)
	defer closeFn()

	creds := Credentials{AccountID: "acc-1", Token: "abcdefghijklmnopqrstuvwxyz"}
	if _, err := drain(context.Background(), NewPager(&client, creds, testRange(), 100)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, present := srv.headers[0]["X-Region"]; present {
		t.Error("Expected no X-Region header")
	}
}

func TestPager_NonSuccessStatusFails(t *testing.T) {
	srv := &archiveServer{t: t, respond: func(call int, req ListArchivesRequest) (int, any) {
		if call == 1 {
			return http.StatusOK, ListArchivesResponse{Chats: chats("t1"), NextPageID: "p2"}
		}
		return http.StatusInternalServerError, `{"error":"boom"}`
	}}
	client, closeFn := newTestClient(t, srv)
	defer closeFn()

	_, err := drain(context.Background(), NewPager(&client, testCreds, testRange(), 100))
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("Expected ErrFetchFailed, got %v", err)
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected *FetchError, got %T", err)
	}
	if fetchErr.Status != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", fetchErr.Status)
	}
	if fetchErr.Body != `{"error":"boom"}` {
		t.Errorf("Expected raw body, got %q", fetchErr.Body)
	}
	if len(srv.requests) != 2 {
		t.Errorf("Expected no retry on status errors, got %d requests", len(srv.requests))
	}
}

func TestPager_StepCapBoundsCyclingCursor(t *testing.T) {
	srv := &archiveServer{t: t, respond: func(call int, req ListArchivesRequest) (int, any) {
		return http.StatusOK, ListArchivesResponse{Chats: chats(fmt.Sprintf("t%d", call)), NextPageID: "same"}
	}}
	client, closeFn := newTestClient(t, srv)
	defer closeFn()

	pager := NewPager(&client, testCreds, testRange(), 100, WithMaxPages(5))
	ids, err := drain(context.Background(), pager)
	if !errors.Is(err, ErrPageLimit) {
		t.Fatalf("Expected ErrPageLimit, got %v", err)
	}
	if len(ids) != 5 || pager.Pages() != 5 {
		t.Errorf("Expected 5 pages, got ids=%d pages=%d", len(ids), pager.Pages())
	}
}

func TestClient_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	client := NewClient(Config{
		APIURL: url,
		Policy: FetchPolicy{Timeout: time.Second, MaxRetries: 1, Backoff: time.Millisecond},
	}, http.Client{})

	_, err := client.ListArchives(context.Background(), testCreds, ListArchivesRequest{Limit: 100})
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("Expected ErrTransport, got %v", err)
	}
	var transportErr *TransportError
	if !errors.As(err, &transportErr) || transportErr.Unwrap() == nil {
		t.Errorf("Expected wrapped cause, got %v", err)
	}
}

func TestClient_TimeoutIsApplied(t *testing.T) {
	client := NewClient(Config{Policy: FetchPolicy{Timeout: 3 * time.Second}}, http.Client{})
	if client.httpClient.Timeout != 3*time.Second {
		t.Errorf("Expected timeout 3s, got %v", client.httpClient.Timeout)
	}
	if client.PageSize() != DefaultPageSize {
		t.Errorf("Expected default page size, got %d", client.PageSize())
	}
}
