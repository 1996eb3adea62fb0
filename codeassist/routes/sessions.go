package routes

import (
	"codeassist/codeassist/controllers"
	"codeassist/codeassist/middlewares"
	"codeassist/codeassist/sources/psql/dao"
	"codeassist/codeassist/utils/types"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// maxUploadMemory bounds the multipart parse buffer; larger parts spill to
// temp files.
const maxUploadMemory = 32 << 20

func SessionRoutes(
	sessionCtrl *controllers.SessionController,
	fileCtrl *controllers.FileController,
	userDAO *dao.UserDAO,
) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares.APIKeyAuth(userDAO))

	r.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
		user, _ := middlewares.UserFromContext(r.Context())
		sessions, err := sessionCtrl.List(r.Context(), user.ID)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return sessions, http.StatusOK, nil
	}))

	r.Post("/", handleJSON(func(r *http.Request) (any, int, error) {
		user, _ := middlewares.UserFromContext(r.Context())
		var req types.SessionCreateRequest
		// An empty body means "pick a name for me".
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			return nil, http.StatusBadRequest, err
		}
		res, err := sessionCtrl.Create(r.Context(), user.ID, req.Name)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return res, http.StatusOK, nil
	}))

	r.Delete("/{session_id}", handleJSON(func(r *http.Request) (any, int, error) {
		user, _ := middlewares.UserFromContext(r.Context())
		sessionID := chi.URLParam(r, "session_id")
		if err := sessionCtrl.Delete(r.Context(), user.ID, sessionID); err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return map[string]string{"message": "Session deleted"}, http.StatusOK, nil
	}))

	r.Get("/{session_id}/messages", handleJSON(func(r *http.Request) (any, int, error) {
		user, _ := middlewares.UserFromContext(r.Context())
		sessionID := chi.URLParam(r, "session_id")
		messages, err := sessionCtrl.Messages(r.Context(), user.ID, sessionID)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return messages, http.StatusOK, nil
	}))

	r.Post("/{session_id}/upload", handleJSON(func(r *http.Request) (any, int, error) {
		user, _ := middlewares.UserFromContext(r.Context())
		sessionID := chi.URLParam(r, "session_id")

		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			return nil, http.StatusBadRequest, err
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		defer file.Close()

		res, err := fileCtrl.Upload(r.Context(), user.ID, sessionID, header.Filename, file)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return res, http.StatusOK, nil
	}))

	r.Get("/{session_id}/files", handleJSON(func(r *http.Request) (any, int, error) {
		user, _ := middlewares.UserFromContext(r.Context())
		sessionID := chi.URLParam(r, "session_id")
		files, err := fileCtrl.List(r.Context(), user.ID, sessionID)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return files, http.StatusOK, nil
	}))

	r.Delete("/{session_id}/files/{filename}", handleJSON(func(r *http.Request) (any, int, error) {
		user, _ := middlewares.UserFromContext(r.Context())
		sessionID := chi.URLParam(r, "session_id")
		filename := chi.URLParam(r, "filename")
		if err := fileCtrl.Remove(r.Context(), user.ID, sessionID, filename); err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return map[string]string{"message": "File removed"}, http.StatusOK, nil
	}))

	return r
}
