package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cat-exhibition/internal/auth"
	"cat-exhibition/internal/repository/sqlite"
	"cat-exhibition/internal/service"
	"cat-exhibition/internal/storage"
)

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string]string
}

func (m *memoryStorage) Upload(_ context.Context, key string, body io.Reader, contentType string) error {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = contentType
	return nil
}

func (m *memoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memoryStorage) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			delete(m.objects, key)
		}
	}
	return nil
}

func (m *memoryStorage) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://bucket.test/" + key + "?signed=1", nil
}

type testServer struct {
	router *gin.Engine
}

func newTestServer(t *testing.T, photos storage.Service) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "cats.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := sqlite.NewStore(context.Background(), db)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := service.NewUserService(store.Users, 8)
	issuer := auth.NewIssuer("test-secret", 5*time.Minute, time.Hour)
	handler := NewHandler(
		service.NewAuthService(users, store.Tokens, issuer),
		service.NewBreedService(store.Breeds),
		service.NewCatService(store.Cats, store.Breeds, service.CatServiceConfig{
			Storage:       photos,
			KeyPrefix:     "cat-photos",
			MaxPhotoBytes: 1 << 10,
			Logger:        logger,
		}),
		service.NewVoteService(store.Votes, store.Cats),
		logger,
		1<<10,
	)

	router := gin.New()
	router.Use(gin.Recovery())
	handler.RegisterRoutes(router)
	return &testServer{router: router}
}

func (s *testServer) raw(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := s.raw(req)
	return rec.Code, rec.Body.Bytes()
}

func (s *testServer) signUp(t *testing.T, username string) auth.Pair {
	t.Helper()
	st, body := s.do(t, http.MethodPost, "/api-auth/signup/", "", map[string]any{
		"username": username,
		"password": "s3cret-pass",
	})
	if st != http.StatusCreated {
		t.Fatalf("signup %s: expected 201, got %d body=%s", username, st, body)
	}
	return decode[auth.Pair](t, body)
}

func (s *testServer) createBreed(t *testing.T, token, name string) BreedResponse {
	t.Helper()
	st, body := s.do(t, http.MethodPost, "/api/breeds/", token, map[string]any{"name": name, "description": "fluffy"})
	if st != http.StatusCreated {
		t.Fatalf("create breed: expected 201, got %d body=%s", st, body)
	}
	return decode[BreedResponse](t, body)
}

func (s *testServer) createCat(t *testing.T, token string, breedID int64) CatResponse {
	t.Helper()
	st, body := s.do(t, http.MethodPost, "/api/cats/", token, catBody(breedID))
	if st != http.StatusCreated {
		t.Fatalf("create cat: expected 201, got %d body=%s", st, body)
	}
	return decode[CatResponse](t, body)
}

func catBody(breedID int64) map[string]any {
	return map[string]any{
		"name":        "Murzik",
		"color":       "tabby",
		"description": "sleeps all day",
		"age":         18,
		"breed":       breedID,
	}
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("decode %T: %v body=%s", v, err, body)
	}
	return v
}

func TestHealthAndRequestID(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.raw(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	if got := s.raw(req).Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("expected request id to be echoed, got %q", got)
	}
}

func TestAccountFlow(t *testing.T) {
	s := newTestServer(t, nil)

	pair := s.signUp(t, "alice")
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatalf("expected token pair, got %+v", pair)
	}

	cases := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"duplicate signup", "/api-auth/signup/", map[string]any{"username": "alice", "password": "s3cret-pass"}, http.StatusBadRequest},
		{"short password", "/api-auth/signup/", map[string]any{"username": "bob", "password": "short"}, http.StatusBadRequest},
		{"signup missing password", "/api-auth/signup/", map[string]any{"username": "bob"}, http.StatusBadRequest},
		{"login missing password", "/api-auth/login/", map[string]any{"username": "alice"}, http.StatusBadRequest},
		{"login missing username", "/api-auth/login/", map[string]any{"password": "s3cret-pass"}, http.StatusBadRequest},
		{"login wrong password", "/api-auth/login/", map[string]any{"username": "alice", "password": "wrong-pass"}, http.StatusUnauthorized},
		{"login unknown user", "/api-auth/login/", map[string]any{"username": "nobody", "password": "s3cret-pass"}, http.StatusUnauthorized},
		{"login malformed json", "/api-auth/login/", "{", http.StatusBadRequest},
		{"login", "/api-auth/login/", map[string]any{"username": "alice", "password": "s3cret-pass"}, http.StatusOK},
		{"token alias", "/api-auth/token/", map[string]any{"username": "alice", "password": "s3cret-pass"}, http.StatusOK},
	}
	for _, tc := range cases {
		st, body := s.do(t, http.MethodPost, tc.path, "", tc.body)
		if st != tc.status {
			t.Fatalf("%s: expected %d, got %d body=%s", tc.name, tc.status, st, body)
		}
	}

	st, body := s.do(t, http.MethodPost, "/api-auth/token/refresh/", "", map[string]any{"refresh": pair.Refresh})
	if st != http.StatusOK {
		t.Fatalf("refresh: expected 200, got %d body=%s", st, body)
	}
	if access := decode[AccessResponse](t, body).Access; access == "" {
		t.Fatal("expected refreshed access token")
	}

	if st, _ := s.do(t, http.MethodPost, "/api-auth/token/refresh/", "", map[string]any{"refresh": pair.Access}); st != http.StatusUnauthorized {
		t.Fatalf("refresh with access token: expected 401, got %d", st)
	}

	if st, body := s.do(t, http.MethodPost, "/api-auth/logout/", "", map[string]any{"refresh_token": pair.Refresh}); st != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d body=%s", st, body)
	}
	if st, _ := s.do(t, http.MethodPost, "/api-auth/logout/", "", map[string]any{"refresh_token": pair.Refresh}); st != http.StatusBadRequest {
		t.Fatalf("second logout: expected 400, got %d", st)
	}
	if st, _ := s.do(t, http.MethodPost, "/api-auth/logout/", "", map[string]any{}); st != http.StatusBadRequest {
		t.Fatalf("logout without token: expected 400, got %d", st)
	}
	if st, _ := s.do(t, http.MethodPost, "/api-auth/logout/", "", map[string]any{"refresh_token": "garbage"}); st != http.StatusBadRequest {
		t.Fatalf("logout with garbage: expected 400, got %d", st)
	}
	if st, _ := s.do(t, http.MethodPost, "/api-auth/token/refresh/", "", map[string]any{"refresh": pair.Refresh}); st != http.StatusUnauthorized {
		t.Fatalf("refresh after logout: expected 401, got %d", st)
	}
}

func TestBreeds(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.signUp(t, "alice").Access

	if st, _ := s.do(t, http.MethodGet, "/api/breeds/", "", nil); st != http.StatusUnauthorized {
		t.Fatalf("list without auth: expected 401, got %d", st)
	}
	if st, _ := s.do(t, http.MethodGet, "/api/breeds/", "not-a-token", nil); st != http.StatusUnauthorized {
		t.Fatalf("list with bad token: expected 401, got %d", st)
	}

	breed := s.createBreed(t, token, "Maine Coon")
	if breed.ID == 0 || breed.Name != "Maine Coon" {
		t.Fatalf("unexpected breed %+v", breed)
	}

	if st, _ := s.do(t, http.MethodPost, "/api/breeds/", token, map[string]any{"name": "Maine Coon"}); st != http.StatusBadRequest {
		t.Fatalf("duplicate breed: expected 400, got %d", st)
	}
	if st, _ := s.do(t, http.MethodPost, "/api/breeds/", token, map[string]any{"description": "no name"}); st != http.StatusBadRequest {
		t.Fatalf("breed without name: expected 400, got %d", st)
	}

	st, body := s.do(t, http.MethodGet, "/api/breeds/", token, nil)
	if st != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", st)
	}
	if breeds := decode[[]BreedResponse](t, body); len(breeds) != 1 {
		t.Fatalf("expected 1 breed, got %d", len(breeds))
	}

	if st, _ := s.do(t, http.MethodGet, fmt.Sprintf("/api/breeds/%d/", breed.ID), token, nil); st != http.StatusOK {
		t.Fatalf("get breed: expected 200, got %d", st)
	}
	if st, _ := s.do(t, http.MethodGet, "/api/breeds/999/", token, nil); st != http.StatusNotFound {
		t.Fatalf("get missing breed: expected 404, got %d", st)
	}
}

func TestCatsCRUD(t *testing.T) {
	s := newTestServer(t, nil)
	owner := s.signUp(t, "owner").Access
	other := s.signUp(t, "other").Access
	breed := s.createBreed(t, owner, "Siberian")
	second := s.createBreed(t, owner, "Birman")

	if st, _ := s.do(t, http.MethodPost, "/api/cats/", "", catBody(breed.ID)); st != http.StatusUnauthorized {
		t.Fatalf("create without auth: expected 401, got %d", st)
	}

	invalid := map[string]map[string]any{
		"non-numeric age": {"name": "A", "color": "b", "description": "c", "age": "old", "breed": breed.ID},
		"negative age":    {"name": "A", "color": "b", "description": "c", "age": -1, "breed": breed.ID},
		"missing name":    {"color": "b", "description": "c", "age": 1, "breed": breed.ID},
		"missing breed":   {"name": "A", "color": "b", "description": "c", "age": 1},
		"unknown breed":   {"name": "A", "color": "b", "description": "c", "age": 1, "breed": 999},
		"long name":       {"name": strings.Repeat("n", 65), "color": "b", "description": "c", "age": 1, "breed": breed.ID},
	}
	for name, body := range invalid {
		if st, resp := s.do(t, http.MethodPost, "/api/cats/", owner, body); st != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d body=%s", name, st, resp)
		}
	}

	cat := s.createCat(t, owner, breed.ID)
	if cat.OwnerInfo == nil || cat.OwnerInfo.Username != "owner" {
		t.Fatalf("expected owner info, got %+v", cat.OwnerInfo)
	}
	if cat.BreedInfo == nil || cat.BreedInfo.Name != "Siberian" {
		t.Fatalf("expected breed info, got %+v", cat.BreedInfo)
	}
	if cat.Rating != 0 || cat.TotalVotes != 0 || cat.Age != 18 {
		t.Fatalf("unexpected new cat %+v", cat)
	}
	s.createCat(t, other, second.ID)

	st, body := s.do(t, http.MethodGet, "/api/cats/", "", nil)
	if st != http.StatusOK {
		t.Fatalf("public list: expected 200, got %d", st)
	}
	if cats := decode[[]CatResponse](t, body); len(cats) != 2 {
		t.Fatalf("expected 2 cats, got %d", len(cats))
	}
	st, body = s.do(t, http.MethodGet, fmt.Sprintf("/api/cats/?breed_id=%d", breed.ID), "", nil)
	if st != http.StatusOK {
		t.Fatalf("filtered list: expected 200, got %d", st)
	}
	if cats := decode[[]CatResponse](t, body); len(cats) != 1 || cats[0].ID != cat.ID {
		t.Fatalf("expected only cat %d, got %+v", cat.ID, cats)
	}
	if st, _ := s.do(t, http.MethodGet, "/api/cats/?breed_id=abc", "", nil); st != http.StatusBadRequest {
		t.Fatalf("bad breed filter: expected 400, got %d", st)
	}

	catPath := fmt.Sprintf("/api/cats/%d/", cat.ID)
	if st, _ := s.do(t, http.MethodGet, catPath, "", nil); st != http.StatusOK {
		t.Fatalf("get cat: expected 200, got %d", st)
	}
	if st, _ := s.do(t, http.MethodGet, "/api/cats/999/", "", nil); st != http.StatusNotFound {
		t.Fatalf("get missing cat: expected 404, got %d", st)
	}
	if st, _ := s.do(t, http.MethodGet, "/api/cats/abc/", "", nil); st != http.StatusBadRequest {
		t.Fatalf("get non-numeric id: expected 400, got %d", st)
	}

	update := catBody(second.ID)
	update["name"] = "Barsik"
	if st, _ := s.do(t, http.MethodPut, catPath, other, update); st != http.StatusForbidden {
		t.Fatalf("update by non-owner: expected 403, got %d", st)
	}
	if st, _ := s.do(t, http.MethodPut, "/api/cats/999/", owner, update); st != http.StatusNotFound {
		t.Fatalf("update missing: expected 404, got %d", st)
	}
	st, body = s.do(t, http.MethodPut, catPath, owner, update)
	if st != http.StatusOK {
		t.Fatalf("update: expected 200, got %d body=%s", st, body)
	}
	if updated := decode[CatResponse](t, body); updated.Name != "Barsik" || updated.Breed != second.ID {
		t.Fatalf("update not applied: %+v", updated)
	}

	if st, _ := s.do(t, http.MethodPatch, catPath, other, map[string]any{"age": 20}); st != http.StatusForbidden {
		t.Fatalf("patch by non-owner: expected 403, got %d", st)
	}
	if st, _ := s.do(t, http.MethodPatch, catPath, owner, map[string]any{"age": -3}); st != http.StatusBadRequest {
		t.Fatalf("patch negative age: expected 400, got %d", st)
	}
	st, body = s.do(t, http.MethodPatch, catPath, owner, map[string]any{"age": 20})
	if st != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d body=%s", st, body)
	}
	if patched := decode[CatResponse](t, body); patched.Age != 20 || patched.Name != "Barsik" {
		t.Fatalf("patch not applied: %+v", patched)
	}

	if st, _ := s.do(t, http.MethodDelete, catPath, other, nil); st != http.StatusForbidden {
		t.Fatalf("delete by non-owner: expected 403, got %d", st)
	}
	if st, _ := s.do(t, http.MethodDelete, "/api/cats/999/", owner, nil); st != http.StatusNotFound {
		t.Fatalf("delete missing: expected 404, got %d", st)
	}
	st, body = s.do(t, http.MethodDelete, catPath, owner, nil)
	if st != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", st)
	}
	if msg := decode[MessageResponse](t, body).Message; msg == "" {
		t.Fatal("expected delete message")
	}
	if st, _ := s.do(t, http.MethodGet, catPath, "", nil); st != http.StatusNotFound {
		t.Fatalf("get deleted cat: expected 404, got %d", st)
	}
}

func TestVoting(t *testing.T) {
	s := newTestServer(t, nil)
	owner := s.signUp(t, "owner").Access
	cat := s.createCat(t, owner, s.createBreed(t, owner, "Savannah").ID)
	votePath := fmt.Sprintf("/api/voting/%d/", cat.ID)

	if st, _ := s.do(t, http.MethodPost, votePath, "", map[string]any{"value": 3}); st != http.StatusUnauthorized {
		t.Fatalf("vote without auth: expected 401, got %d", st)
	}
	rejected := []any{
		map[string]any{"value": 6},
		map[string]any{"value": -1},
		map[string]any{"value": "five"},
		map[string]any{},
	}
	for _, body := range rejected {
		if st, resp := s.do(t, http.MethodPost, votePath, owner, body); st != http.StatusBadRequest {
			t.Fatalf("vote %v: expected 400, got %d body=%s", body, st, resp)
		}
	}
	if st, _ := s.do(t, http.MethodPost, "/api/voting/999/", owner, map[string]any{"value": 3}); st != http.StatusNotFound {
		t.Fatalf("vote for missing cat: expected 404, got %d", st)
	}

	marks := []struct {
		value  int
		rating float64
	}{
		{4, 4},
		{2, 3},
		{5, 11.0 / 3.0},
	}
	for i, mark := range marks {
		voter := s.signUp(t, fmt.Sprintf("voter%d", i)).Access
		st, body := s.do(t, http.MethodPost, votePath, voter, map[string]any{"value": mark.value})
		if st != http.StatusOK {
			t.Fatalf("vote %d: expected 200, got %d body=%s", i, st, body)
		}
		result := decode[VoteResultResponse](t, body)
		if result.TotalVotes != int64(i+1) {
			t.Fatalf("vote %d: expected %d total votes, got %d", i, i+1, result.TotalVotes)
		}
		if math.Abs(result.Rating-mark.rating) > 1e-9 {
			t.Fatalf("vote %d: expected rating %v, got %v", i, mark.rating, result.Rating)
		}

		if st, _ := s.do(t, http.MethodPost, votePath, voter, map[string]any{"value": 1}); st != http.StatusConflict {
			t.Fatalf("repeat vote %d: expected 409, got %d", i, st)
		}
	}

	st, body := s.do(t, http.MethodGet, fmt.Sprintf("/api/cats/%d/", cat.ID), "", nil)
	if st != http.StatusOK {
		t.Fatalf("get cat: expected 200, got %d", st)
	}
	if got := decode[CatResponse](t, body); got.TotalVotes != 3 || math.Abs(got.Rating-11.0/3.0) > 1e-9 {
		t.Fatalf("unexpected tallies after voting: %+v", got)
	}

	st, body = s.do(t, http.MethodGet, votePath, owner, nil)
	if st != http.StatusOK {
		t.Fatalf("list votes: expected 200, got %d", st)
	}
	if votes := decode[[]VoteResponse](t, body); len(votes) != 3 {
		t.Fatalf("expected 3 votes, got %d", len(votes))
	}
}

func photoRequest(t *testing.T, path, token, contentType string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="photo"; filename="cat.png"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestCatPhotos(t *testing.T) {
	photos := &memoryStorage{objects: make(map[string]string)}
	s := newTestServer(t, photos)
	owner := s.signUp(t, "owner").Access
	other := s.signUp(t, "other").Access
	cat := s.createCat(t, owner, s.createBreed(t, owner, "Devon Rex").ID)
	photoPath := fmt.Sprintf("/api/cats/%d/photo/", cat.ID)

	if st, _ := s.do(t, http.MethodGet, photoPath, "", nil); st != http.StatusNotFound {
		t.Fatalf("photo before upload: expected 404, got %d", st)
	}

	png := []byte("\x89PNG fake image")
	if rec := s.raw(photoRequest(t, photoPath, other, "image/png", png)); rec.Code != http.StatusForbidden {
		t.Fatalf("upload by non-owner: expected 403, got %d", rec.Code)
	}
	if rec := s.raw(photoRequest(t, photoPath, owner, "application/pdf", png)); rec.Code != http.StatusBadRequest {
		t.Fatalf("upload pdf: expected 400, got %d", rec.Code)
	}
	if rec := s.raw(photoRequest(t, photoPath, owner, "image/png", bytes.Repeat([]byte("x"), 2<<10))); rec.Code != http.StatusBadRequest {
		t.Fatalf("upload oversized: expected 400, got %d", rec.Code)
	}

	rec := s.raw(photoRequest(t, photoPath, owner, "image/png", png))
	if rec.Code != http.StatusOK {
		t.Fatalf("upload: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if updated := decode[CatResponse](t, rec.Body.Bytes()); !updated.HasPhoto {
		t.Fatal("expected has_photo after upload")
	}

	rec = s.raw(httptest.NewRequest(http.MethodGet, photoPath, nil))
	if rec.Code != http.StatusFound {
		t.Fatalf("get photo: expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "https://bucket.test/cat-photos/cats/") {
		t.Fatalf("unexpected redirect %q", loc)
	}

	if st, _ := s.do(t, http.MethodDelete, fmt.Sprintf("/api/cats/%d/", cat.ID), owner, nil); st != http.StatusOK {
		t.Fatalf("delete cat: expected 200, got %d", st)
	}
	photos.mu.Lock()
	left := len(photos.objects)
	photos.mu.Unlock()
	if left != 0 {
		t.Fatalf("expected photos removed with cat, %d left", left)
	}
}

func TestCatPhotosWithoutStorage(t *testing.T) {
	s := newTestServer(t, nil)
	owner := s.signUp(t, "owner").Access
	cat := s.createCat(t, owner, s.createBreed(t, owner, "Ocicat").ID)
	photoPath := fmt.Sprintf("/api/cats/%d/photo/", cat.ID)

	if rec := s.raw(photoRequest(t, photoPath, owner, "image/png", []byte("png"))); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("upload without storage: expected 503, got %d", rec.Code)
	}
	if st, _ := s.do(t, http.MethodGet, photoPath, "", nil); st != http.StatusServiceUnavailable {
		t.Fatalf("get without storage: expected 503, got %d", st)
	}
}

func TestCatMutationChecksOwnerBeforeBody(t *testing.T) {
	s := newTestServer(t, nil)
	owner := s.signUp(t, "owner").Access
	other := s.signUp(t, "other").Access
	cat := s.createCat(t, owner, s.createBreed(t, owner, "Burmese").ID)
	catPath := fmt.Sprintf("/api/cats/%d/", cat.ID)
	partial := map[string]any{"name": "x"}

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"non-owner put with partial body", http.MethodPut, catPath, other, http.StatusForbidden},
		{"non-owner patch with bad age", http.MethodPatch, catPath, other, http.StatusForbidden},
		{"missing cat put with partial body", http.MethodPut, "/api/cats/9999/", owner, http.StatusNotFound},
		{"missing cat patch", http.MethodPatch, "/api/cats/9999/", owner, http.StatusNotFound},
		{"owner put with partial body", http.MethodPut, catPath, owner, http.StatusBadRequest},
	}
	for _, tc := range cases {
		body := any(partial)
		if tc.method == http.MethodPatch {
			body = map[string]any{"age": -1}
		}
		if st, resp := s.do(t, tc.method, tc.path, tc.token, body); st != tc.status {
			t.Fatalf("%s: expected %d, got %d body=%s", tc.name, tc.status, st, resp)
		}
	}

	req := photoRequest(t, "/api/cats/9999/photo/", owner, "image/png", []byte("png"))
	if rec := s.raw(req); rec.Code != http.StatusNotFound {
		t.Fatalf("photo for missing cat: expected 404, got %d", rec.Code)
	}
}

func TestBindErrorsAreShort(t *testing.T) {
	s := newTestServer(t, nil)
	owner := s.signUp(t, "owner").Access
	breed := s.createBreed(t, owner, "Tonkinese")
	catPath := fmt.Sprintf("/api/cats/%d/", s.createCat(t, owner, breed.ID).ID)

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		want   string
	}{
		{"missing color", http.MethodPut, catPath, map[string]any{"name": "x"}, "color is required"},
		{"negative age", http.MethodPost, "/api/cats/", map[string]any{"name": "A", "color": "b", "description": "c", "age": -1, "breed": breed.ID}, "age must be at least 0"},
		{"age of wrong type", http.MethodPost, "/api/cats/", map[string]any{"name": "A", "color": "b", "description": "c", "age": "old", "breed": breed.ID}, "age must be of type int"},
		{"malformed json", http.MethodPost, "/api/breeds/", "{", "malformed JSON body"},
		{"missing vote value", http.MethodPost, "/api/voting/1/", map[string]any{}, "value is required"},
	}
	for _, tc := range cases {
		st, body := s.do(t, tc.method, tc.path, owner, tc.body)
		if st != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d body=%s", tc.name, st, body)
		}
		if got := decode[ErrorResponse](t, body).Error; got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}
