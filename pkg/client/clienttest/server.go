// Package clienttest runs an in-memory double of the image service for
// client-side tests. It speaks the same routes and body shapes as the real
// server, nothing more.
package clienttest

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/mux"
)

type ImageRow struct {
	ID           int64
	Path         string
	Name         string
	Description  string
	UploaderName string
	Tags         []string
}

// Server is the fake image service. TagsAsString switches the listing between
// the two tag representations observed in the wild: JSON array and
// GROUP_CONCAT comma string (null when untagged).
type Server struct {
	mu sync.Mutex

	Images       []ImageRow
	VoteCounts   map[int64]int
	TagsAsString bool

	// RejectVotes, when set, makes every vote call fail with this message.
	RejectVotes string

	// HoldUploads, when set, blocks upload replies until the channel is closed.
	HoldUploads chan struct{}

	// Users maps username to password for login checks.
	Users map[string]string

	nextID int64
	ts     *httptest.Server
}

func NewServer() *Server {
	s := &Server{
		VoteCounts: map[int64]int{},
		Users:      map[string]string{},
		nextID:     1,
	}

	r := mux.NewRouter()
	r.HandleFunc("/images", s.listImages).Methods(http.MethodGet)
	r.HandleFunc("/images/{id}/vote", s.vote).Methods(http.MethodPost)
	r.HandleFunc("/images/{id}/votes", s.voteCount).Methods(http.MethodGet)
	r.HandleFunc("/upload", s.upload).Methods(http.MethodPost)
	r.HandleFunc("/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/register", s.register).Methods(http.MethodPost)

	s.ts = httptest.NewServer(r)
	return s
}

func (s *Server) URL() string {
	return s.ts.URL
}

func (s *Server) Close() {
	s.ts.Close()
}

// Add seeds one image and returns its id.
func (s *Server) Add(row ImageRow) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	row.ID = s.nextID
	s.nextID++
	s.Images = append(s.Images, row)
	return row.ID
}

func (s *Server) listImages(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tag := r.URL.Query().Get("tag")
	rows := make([]map[string]interface{}, 0, len(s.Images))
	for _, img := range s.Images {
		if tag != "" && !contains(img.Tags, tag) {
			continue
		}

		row := map[string]interface{}{
			"image_id":    img.ID,
			"image_path":  img.Path,
			"name":        img.Name,
			"description": img.Description,
			"username":    img.UploaderName,
		}
		if s.TagsAsString {
			if len(img.Tags) == 0 {
				row["tags"] = nil
			} else {
				row["tags"] = strings.Join(img.Tags, ",")
			}
		} else {
			row["tags"] = img.Tags
		}
		rows = append(rows, row)
	}

	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) vote(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.RejectVotes != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": s.RejectVotes})
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid image id"})
		return
	}

	var req struct {
		Vote int `json:"vote"`
	}
	body, _ := ioutil.ReadAll(r.Body)
	if json.Unmarshal(body, &req) != nil || (req.Vote != 1 && req.Vote != -1) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid vote value"})
		return
	}

	s.VoteCounts[id] += req.Vote
	writeJSON(w, http.StatusOK, map[string]string{"message": "Vote recorded successfully"})
}

func (s *Server) voteCount(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid image id"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"vote_count": s.VoteCounts[id]})
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	hold := s.HoldUploads
	s.mu.Unlock()
	if hold != nil {
		<-hold
	}

	err := r.ParseMultipartForm(32 << 20)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No image part"})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No image part"})
		return
	}
	file.Close()

	tags := []string{}
	for _, t := range strings.Split(r.FormValue("tags"), ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}

	s.Add(ImageRow{
		Path:         header.Filename,
		Name:         r.FormValue("name"),
		Description:  r.FormValue("description"),
		UploaderName: "uploader",
		Tags:         tags,
	})

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Image uploaded successfully"})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username, password, ok := readCreds(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Username and password are required"})
		return
	}

	stored, exists := s.Users[username]
	if !exists || stored != password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid username or password"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Login successful",
		"username": username,
		"user_id":  int64(len(s.Users)),
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username, password, ok := readCreds(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Username and password are required"})
		return
	}

	if _, exists := s.Users[username]; exists {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Username already exists"})
		return
	}

	s.Users[username] = password
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

func readCreds(r *http.Request) (string, string, bool) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	body, _ := ioutil.ReadAll(r.Body)
	if json.Unmarshal(body, &req) != nil || req.Username == "" || req.Password == "" {
		return "", "", false
	}

	return req.Username, req.Password, true
}

func contains(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}

	return false
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error": "marshal failure"}`)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
