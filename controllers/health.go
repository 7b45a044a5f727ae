package controllers

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"

	"school-directory/models"
	"school-directory/utils"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct{}

func (hc HealthController) Health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.NoStore(w)
		if err := db.Ping(r.Context()); err != nil {
			log.WithError(err).Warn("health check failed")
			utils.RespondWithError(w, http.StatusServiceUnavailable, models.Error{Message: "Database unavailable", Details: err.Error()})
			return
		}
		utils.ResponseJSON(w, http.StatusOK, models.Message{Message: "ok"})
	}
}
