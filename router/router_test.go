package router

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"gallery/config"
	"gallery/db"
	"gallery/handlers"
	"gallery/models"
	"gallery/storage"

	"github.com/gin-gonic/gin"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "secret"
)

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.MYSQL_DSN = ""
	config.SQLITE_FILE = filepath.Join(t.TempDir(), "gallery.db")
	config.ADMIN_EMAIL = testAdminEmail
	config.ADMIN_PASSWORD = testAdminPassword
	config.STORAGE_TYPE = "disk"
	config.DISK_PATH = filepath.Join(t.TempDir(), "media")
	config.PUBLIC_BASE_URL = "/media"
	config.UPLOAD_DIR = "gallery"
	config.DEBUG_MODE = true
	if err := os.MkdirAll(config.DISK_PATH, 0777); err != nil {
		t.Fatal(err)
	}
	db.Init()
	models.Init()
	storage.Init()
	return New()
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	res := httptest.NewRecorder()
	engine.ServeHTTP(res, req)
	return res
}

func decodeInto(t *testing.T, res *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(res.Body.Bytes(), target); err != nil {
		t.Fatalf("cannot decode response %q: %v", res.Body.String(), err)
	}
}

func login(t *testing.T, engine *gin.Engine) []*http.Cookie {
	t.Helper()
	res := doJSON(t, engine, "POST", "/auth/login", gin.H{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	}, nil)
	if res.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", res.Code, res.Body.String())
	}
	cookies := res.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login set no session cookie")
	}
	return cookies
}

func makeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

type uploadFile struct {
	name string
	data []byte
}

func doUpload(t *testing.T, engine *gin.Engine, cookies []*http.Cookie, files []uploadFile, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		fw, err := w.CreateFormFile("files", f.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err = fw.Write(f.data); err != nil {
			t.Fatal(err)
		}
	}
	for key, value := range fields {
		_ = w.WriteField(key, value)
	}
	w.Close()
	req := httptest.NewRequest("POST", "/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	for _, c := range cookies {
		req.AddCookie(c)
	}
	res := httptest.NewRecorder()
	engine.ServeHTTP(res, req)
	return res
}

type uploadResponse struct {
	Uploaded int                     `json:"uploaded"`
	Total    int                     `json:"total"`
	Results  []handlers.UploadResult `json:"results"`
}

func TestLoginWrongPassword(t *testing.T) {
	engine := setupServer(t)

	res := doJSON(t, engine, "POST", "/auth/login", gin.H{
		"email":    testAdminEmail,
		"password": "wrong",
	}, nil)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", res.Code)
	}
	for _, c := range res.Result().Cookies() {
		if c.Name == "session" && c.Value != "" {
			t.Errorf("failed login set a session cookie")
		}
	}

	me := doJSON(t, engine, "GET", "/auth/me", nil, nil)
	if me.Code != http.StatusUnauthorized {
		t.Fatalf("/auth/me status = %d, want 401", me.Code)
	}
	var body struct {
		Authenticated bool `json:"authenticated"`
	}
	decodeInto(t, me, &body)
	if body.Authenticated {
		t.Error("/auth/me reports authenticated after failed login")
	}
}

func TestLoginLogoutMe(t *testing.T) {
	engine := setupServer(t)
	cookies := login(t, engine)

	me := doJSON(t, engine, "GET", "/auth/me", nil, cookies)
	if me.Code != http.StatusOK {
		t.Fatalf("/auth/me status = %d, want 200", me.Code)
	}
	var body struct {
		Authenticated bool `json:"authenticated"`
		User          struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	decodeInto(t, me, &body)
	if !body.Authenticated || body.User.Email != testAdminEmail {
		t.Fatalf("/auth/me = %+v", body)
	}

	out := doJSON(t, engine, "POST", "/auth/logout", nil, cookies)
	if out.Code != http.StatusOK {
		t.Fatalf("logout status = %d", out.Code)
	}
	me = doJSON(t, engine, "GET", "/auth/me", nil, out.Result().Cookies())
	if me.Code != http.StatusUnauthorized {
		t.Fatalf("/auth/me after logout status = %d, want 401", me.Code)
	}
}

func TestMutationsRequireAuth(t *testing.T) {
	engine := setupServer(t)

	tests := []struct {
		method string
		path   string
		body   interface{}
	}{
		{"POST", "/albums", gin.H{"name": "x"}},
		{"PUT", "/albums/some-id", gin.H{"name": "x"}},
		{"DELETE", "/albums/some-id", nil},
		{"POST", "/photos", gin.H{"image_url": "/media/x.jpg"}},
		{"PUT", "/photos/some-id", gin.H{}},
		{"DELETE", "/photos/some-id", nil},
		{"POST", "/photos/move", gin.H{"ids": []string{"x"}}},
	}
	for _, tt := range tests {
		res := doJSON(t, engine, tt.method, tt.path, tt.body, nil)
		if res.Code != http.StatusUnauthorized {
			t.Errorf("%s %s status = %d, want 401", tt.method, tt.path, res.Code)
		}
	}

	// And no album appeared as a side effect
	var albums []models.AlbumInfo
	res := doJSON(t, engine, "GET", "/albums", nil, nil)
	decodeInto(t, res, &albums)
	if len(albums) != 0 {
		t.Errorf("unauthenticated request created an album")
	}
}

func TestAlbumCRUD(t *testing.T) {
	engine := setupServer(t)
	cookies := login(t, engine)

	res := doJSON(t, engine, "POST", "/albums", gin.H{"name": "Trip", "description": "summer"}, cookies)
	if res.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", res.Code, res.Body.String())
	}
	var album models.AlbumInfo
	decodeInto(t, res, &album)
	if album.ID == "" || album.Name != "Trip" || album.PhotoCount != 0 {
		t.Fatalf("created album = %+v", album)
	}

	res = doJSON(t, engine, "POST", "/albums", gin.H{"description": "no name"}, cookies)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("create without name status = %d, want 400", res.Code)
	}

	res = doJSON(t, engine, "PUT", "/albums/"+album.ID, gin.H{"name": "Renamed"}, cookies)
	if res.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", res.Code, res.Body.String())
	}
	var updated models.AlbumInfo
	decodeInto(t, res, &updated)
	if updated.Name != "Renamed" {
		t.Errorf("updated name = %q", updated.Name)
	}

	if res = doJSON(t, engine, "GET", "/albums/no-such-id", nil, nil); res.Code != http.StatusNotFound {
		t.Errorf("get unknown album status = %d, want 404", res.Code)
	}
	if res = doJSON(t, engine, "PUT", "/albums/no-such-id", gin.H{"name": "x"}, cookies); res.Code != http.StatusNotFound {
		t.Errorf("update unknown album status = %d, want 404", res.Code)
	}

	if res = doJSON(t, engine, "DELETE", "/albums/"+album.ID, nil, cookies); res.Code != http.StatusOK {
		t.Fatalf("delete status = %d", res.Code)
	}
	var albums []models.AlbumInfo
	res = doJSON(t, engine, "GET", "/albums", nil, nil)
	decodeInto(t, res, &albums)
	if len(albums) != 0 {
		t.Errorf("album still listed after delete")
	}
}

func TestUploadLifecycle(t *testing.T) {
	engine := setupServer(t)
	cookies := login(t, engine)

	res := doJSON(t, engine, "POST", "/albums", gin.H{"name": "Trip"}, cookies)
	var album models.AlbumInfo
	decodeInto(t, res, &album)

	up := doUpload(t, engine, cookies, []uploadFile{{"boat.png", makeJPEG(t, 40, 30)}}, map[string]string{
		"albumId":      album.ID,
		"descriptions": "a boat",
		"years":        "1999",
	})
	if up.Code != http.StatusOK {
		t.Fatalf("upload status = %d: %s", up.Code, up.Body.String())
	}
	var result uploadResponse
	decodeInto(t, up, &result)
	if result.Uploaded != 1 || result.Total != 1 {
		t.Fatalf("upload summary = %d/%d, want 1/1", result.Uploaded, result.Total)
	}
	photoID := result.Results[0].PhotoID
	imageURL := result.Results[0].PublicURL
	if photoID == "" || imageURL == "" {
		t.Fatalf("upload result = %+v", result.Results[0])
	}

	// The stored asset is served and the album aggregate reflects it
	if res = doJSON(t, engine, "GET", imageURL, nil, nil); res.Code != http.StatusOK {
		t.Fatalf("GET %s status = %d, want 200", imageURL, res.Code)
	}
	res = doJSON(t, engine, "GET", "/albums/"+album.ID, nil, nil)
	var withPhotos handlers.AlbumWithPhotos
	decodeInto(t, res, &withPhotos)
	if withPhotos.PhotoCount != 1 || len(withPhotos.Photos) != 1 {
		t.Fatalf("album after upload = %+v", withPhotos)
	}
	photo := withPhotos.Photos[0]
	if photo.Description == nil || *photo.Description != "a boat" {
		t.Errorf("photo description = %+v", photo.Description)
	}
	if photo.Year == nil || *photo.Year != 1999 {
		t.Errorf("photo year = %+v", photo.Year)
	}
	if photo.FileSize == 0 {
		t.Errorf("photo file_size = 0")
	}

	// Delete removes the row and, best effort, the asset
	if res = doJSON(t, engine, "DELETE", "/photos/"+photoID, nil, cookies); res.Code != http.StatusOK {
		t.Fatalf("delete photo status = %d: %s", res.Code, res.Body.String())
	}
	var photos []models.PhotoInfo
	res = doJSON(t, engine, "GET", "/photos?album_id="+album.ID, nil, nil)
	decodeInto(t, res, &photos)
	if len(photos) != 0 {
		t.Errorf("photos still listed after delete")
	}
	if res = doJSON(t, engine, "GET", imageURL, nil, nil); res.Code != http.StatusNotFound {
		t.Errorf("GET %s after delete status = %d, want 404", imageURL, res.Code)
	}
}

func TestUploadPerFileIndependence(t *testing.T) {
	engine := setupServer(t)
	cookies := login(t, engine)

	up := doUpload(t, engine, cookies, []uploadFile{
		{"good.jpg", makeJPEG(t, 40, 30)},
		{"broken.jpg", []byte("this is not an image")},
	}, nil)
	if up.Code != http.StatusOK {
		t.Fatalf("upload status = %d: %s", up.Code, up.Body.String())
	}
	var result uploadResponse
	decodeInto(t, up, &result)
	if result.Uploaded != 1 || result.Total != 2 {
		t.Fatalf("upload summary = %d/%d, want 1/2", result.Uploaded, result.Total)
	}
	if !result.Results[0].Success {
		t.Errorf("good file failed: %+v", result.Results[0])
	}
	if result.Results[1].Success || result.Results[1].Error != "format" {
		t.Errorf("broken file result = %+v, want format failure", result.Results[1])
	}

	var photos []models.PhotoInfo
	res := doJSON(t, engine, "GET", "/photos", nil, nil)
	decodeInto(t, res, &photos)
	if len(photos) != 1 {
		t.Errorf("photo rows = %d, want 1", len(photos))
	}
}

func TestUploadTransferFailureWritesNoRow(t *testing.T) {
	engine := setupServer(t)
	cookies := login(t, engine)

	// Break the disk store: its base path becomes a regular file
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	config.DISK_PATH = blocker
	storage.Init()

	up := doUpload(t, engine, cookies, []uploadFile{{"a.jpg", makeJPEG(t, 40, 30)}}, nil)
	if up.Code != http.StatusOK {
		t.Fatalf("upload status = %d: %s", up.Code, up.Body.String())
	}
	var result uploadResponse
	decodeInto(t, up, &result)
	if result.Uploaded != 0 || result.Results[0].Error != "transfer" {
		t.Fatalf("upload result = %+v, want transfer failure", result)
	}

	var photos []models.PhotoInfo
	res := doJSON(t, engine, "GET", "/photos", nil, nil)
	decodeInto(t, res, &photos)
	if len(photos) != 0 {
		t.Errorf("photo row created despite failed upload")
	}
}

func TestUploadMetadataFailureDeletesBlob(t *testing.T) {
	engine := setupServer(t)
	cookies := login(t, engine)

	// Break the metadata write while the store keeps working
	if err := db.Instance.Migrator().DropTable(&models.Photo{}); err != nil {
		t.Fatal(err)
	}

	up := doUpload(t, engine, cookies, []uploadFile{{"a.jpg", makeJPEG(t, 40, 30)}}, nil)
	if up.Code != http.StatusOK {
		t.Fatalf("upload status = %d: %s", up.Code, up.Body.String())
	}
	var result uploadResponse
	decodeInto(t, up, &result)
	if result.Uploaded != 0 || result.Results[0].Error != "storage" {
		t.Fatalf("upload result = %+v, want storage failure", result)
	}

	// The stored blob must not outlive the failed metadata write
	uploadDir := filepath.Join(config.DISK_PATH, config.UPLOAD_DIR)
	entries, err := os.ReadDir(uploadDir)
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("orphaned blobs left behind: %d", len(entries))
	}
}

func TestPhotoMove(t *testing.T) {
	engine := setupServer(t)
	cookies := login(t, engine)

	res := doJSON(t, engine, "POST", "/albums", gin.H{"name": "Trip"}, cookies)
	var album models.AlbumInfo
	decodeInto(t, res, &album)

	ids := make([]string, 0, 2)
	for _, name := range []string{"one", "two"} {
		res = doJSON(t, engine, "POST", "/photos", gin.H{"image_url": "/media/gallery/" + name + ".jpg"}, cookies)
		if res.Code != http.StatusCreated {
			t.Fatalf("create photo status = %d: %s", res.Code, res.Body.String())
		}
		var photo models.PhotoInfo
		decodeInto(t, res, &photo)
		ids = append(ids, photo.ID)
	}

	res = doJSON(t, engine, "POST", "/photos/move", gin.H{"ids": ids, "album_id": album.ID}, cookies)
	if res.Code != http.StatusOK {
		t.Fatalf("move status = %d: %s", res.Code, res.Body.String())
	}
	var moved struct {
		Moved  int      `json:"moved"`
		Total  int      `json:"total"`
		Failed []string `json:"failed"`
	}
	decodeInto(t, res, &moved)
	if moved.Moved != 2 || moved.Total != 2 {
		t.Fatalf("move summary = %+v", moved)
	}

	// Partial failure: one real id, one bogus
	res = doJSON(t, engine, "POST", "/photos/move", gin.H{"ids": []string{ids[0], "no-such-photo"}}, cookies)
	decodeInto(t, res, &moved)
	if moved.Moved != 1 || moved.Total != 2 || len(moved.Failed) != 1 || moved.Failed[0] != "no-such-photo" {
		t.Fatalf("partial move summary = %+v", moved)
	}

	// ids[0] was unassigned by the nil album_id above
	var photos []models.PhotoInfo
	res = doJSON(t, engine, "GET", "/photos?unassigned=true", nil, nil)
	decodeInto(t, res, &photos)
	if len(photos) != 1 || photos[0].ID != ids[0] {
		t.Fatalf("unassigned photos = %+v", photos)
	}
}

func TestPhotoCreateValidation(t *testing.T) {
	engine := setupServer(t)
	cookies := login(t, engine)

	res := doJSON(t, engine, "POST", "/photos", gin.H{"description": "no url"}, cookies)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.Code)
	}
	var body handlers.ErrorResponse
	decodeInto(t, res, &body)
	if body.Error != "validation" {
		t.Errorf("error category = %q, want validation", body.Error)
	}
}
