package controllers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"school-directory/models"
	"school-directory/storage"
	"school-directory/utils"
)

// multipartMemory is how much of a form is kept in memory before parts spill
// to temporary files.
const multipartMemory = 10 << 20

// SchoolStore is the persistence the school handlers need.
type SchoolStore interface {
	Create(ctx context.Context, input models.SchoolInput, image *string) (int64, error)
	ListAll(ctx context.Context) ([]models.School, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

type SchoolController struct {
	// MaxBodyBytes caps the request body of CreateSchool. Zero means no cap.
	MaxBodyBytes int64
}

func (sc SchoolController) GetSchools(store SchoolStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.NoStore(w)
		schools, err := store.ListAll(r.Context())
		if err != nil {
			log.WithError(err).Error("list schools")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch schools", Details: err.Error()})
			return
		}
		utils.ResponseJSON(w, http.StatusOK, schools)
	}
}

func (sc SchoolController) CreateSchool(store SchoolStore, images storage.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sc.MaxBodyBytes > 0 {
			if r.ContentLength > sc.MaxBodyBytes {
				utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Request body too large"})
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, sc.MaxBodyBytes)
		}
		if err := parseForm(r); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Request body too large", Details: err.Error()})
				return
			}
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Failed to parse form", Details: err.Error()})
			return
		}

		input := formInput(r)
		if err := input.Validate(); err != nil {
			respondInvalid(w, input, err)
			return
		}

		image, err := storeImage(r, images)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrPayloadTooLarge):
				utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Image size exceeds 5MB limit"})
			case errors.Is(err, errUnreadableImage):
				utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Failed to process image", Details: err.Error()})
			default:
				log.WithError(err).Error("store image")
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to add school", Details: err.Error()})
			}
			return
		}

		id, err := store.Create(r.Context(), input, image)
		if err != nil {
			if models.IsValidation(err) {
				respondInvalid(w, input, err)
				return
			}
			log.WithError(err).Error("create school")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to add school", Details: err.Error()})
			return
		}

		log.WithFields(log.Fields{"id": id, "image": image != nil}).Info("school added")
		utils.ResponseJSON(w, http.StatusCreated, models.Message{Message: "School added successfully", ID: id})
	}
}

func (sc SchoolController) DeleteSchool(store SchoolStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("id")
		if raw == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "School ID is required"})
			return
		}
		id, err := utils.StrToInt64(raw)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "School ID must be an integer", Details: err.Error()})
			return
		}

		removed, err := store.DeleteByID(r.Context(), id)
		if err != nil {
			log.WithError(err).WithField("id", id).Error("delete school")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to delete school", Details: err.Error()})
			return
		}
		if !removed {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "School not found"})
			return
		}

		log.WithField("id", id).Info("school deleted")
		utils.ResponseJSON(w, http.StatusOK, models.Message{Message: "School deleted successfully"})
	}
}

// parseForm accepts multipart bodies and, for clients without a file,
// urlencoded ones.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

func formInput(r *http.Request) models.SchoolInput {
	return models.SchoolInput{
		Name:    field(r, "name"),
		Address: field(r, "address"),
		City:    field(r, "city"),
		State:   field(r, "state"),
		Contact: field(r, "contact"),
		EmailID: field(r, "email_id"),
	}
}

func field(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}

func respondInvalid(w http.ResponseWriter, input models.SchoolInput, err error) {
	msg := "Invalid field values"
	if input.Missing() {
		msg = "All required fields must be provided"
	}
	utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: msg, Details: err.Error()})
}

var errUnreadableImage = errors.New("unreadable image part")

// storeImage hands the optional "image" part to the backend. A request
// without one yields a nil reference.
func storeImage(r *http.Request, images storage.Backend) (*string, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		// Missing part, or a urlencoded form that cannot carry one.
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errUnreadableImage, err.Error())
	}
	defer file.Close()

	if header.Size > models.MaxImageSize {
		return nil, models.ErrPayloadTooLarge
	}
	data, err := io.ReadAll(io.LimitReader(file, models.MaxImageSize+1))
	if err != nil {
		return nil, errors.Wrap(errUnreadableImage, err.Error())
	}
	return images.Store(r.Context(), data, header.Header.Get("Content-Type"), header.Filename)
}
