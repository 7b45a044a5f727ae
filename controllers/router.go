package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"school-directory/storage"
)

// Directory bundles what the router serves.
type Directory struct {
	Schools interface {
		SchoolStore
		Pinger
	}
	Images         storage.Backend
	MaxBodyBytes   int64
	RequestTimeout time.Duration

	// UploadDir is served under UploadURLPath when set.
	UploadDir     string
	UploadURLPath string
}

func NewRouter(d Directory) *mux.Router {
	schoolController := SchoolController{MaxBodyBytes: d.MaxBodyBytes}
	healthController := HealthController{}

	router := mux.NewRouter()
	router.Use(RequestLogger(), RequestTimeout(d.RequestTimeout))

	router.HandleFunc("/schools", schoolController.GetSchools(d.Schools)).Methods("GET")
	router.HandleFunc("/schools", schoolController.CreateSchool(d.Schools, d.Images)).Methods("POST")
	router.HandleFunc("/schools", schoolController.DeleteSchool(d.Schools)).Methods("DELETE")
	router.HandleFunc("/healthz", healthController.Health(d.Schools)).Methods("GET")

	if d.UploadDir != "" {
		prefix := "/" + strings.Trim(d.UploadURLPath, "/") + "/"
		router.PathPrefix(prefix).Handler(http.StripPrefix(prefix, http.FileServer(http.Dir(d.UploadDir)))).Methods("GET", "HEAD")
	}
	return router
}
