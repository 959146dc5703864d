package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rolodexhq/rolodex/server/auth"
	"github.com/rolodexhq/rolodex/server/auth/key"
	"github.com/rolodexhq/rolodex/server/models"
	"gorm.io/gorm"
)

type ResponsePayload struct {
	Errors  []string    `json:"errors,omitempty"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

func (app *App) healthCheckHandler(rw http.ResponseWriter, r *http.Request) {
	json.NewEncoder(rw).Encode(ResponsePayload{Success: true})
}

func (app *App) jwksHandler(rw http.ResponseWriter, r *http.Request) {
	keyPairJWK, err := app.keyPair.JWK()
	if err != nil {
		app.writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(key.ExportJWKAsJWKS(keyPairJWK))
}

func (app *App) signupHandler(rw http.ResponseWriter, r *http.Request) {
	data := models.User{}

	err := json.NewDecoder(r.Body).Decode(&data)
	if err != nil {
		app.writeResponse(rw, ResponsePayload{Errors: []string{"request body is required"}}, http.StatusBadRequest)
		return
	}

	errs := validate.Struct(data)
	if errs != nil {
		app.writeResponse(rw, ResponsePayload{Errors: strings.Split(errs.Error(), "\n")}, http.StatusBadRequest)
		return
	}

	err = app.store.CreateUser(&data)
	if err != nil {
		app.writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	app.writeTokenResponse(rw, &data)
}

func (app *App) loginHandler(rw http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		app.writeResponse(rw, ResponsePayload{Errors: []string{"basic auth credentials required"}}, http.StatusUnauthorized)
		return
	}

	passwordHash, err := app.store.FindUserPassword(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		app.writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	if !auth.CheckPasswordHash(password, passwordHash) {
		app.writeResponse(rw, ResponsePayload{Errors: []string{"email/password is invalid"}}, http.StatusUnauthorized)
		return
	}

	user, err := app.store.FindUserBy("email", email)
	if err != nil {
		app.writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	app.writeTokenResponse(rw, user)
}

func (app *App) createContactHandler(rw http.ResponseWriter, r *http.Request) {
	data := models.Contact{}

	err := json.NewDecoder(r.Body).Decode(&data)
	if err != nil {
		app.writeResponse(rw, ResponsePayload{Errors: []string{"request body is required"}}, http.StatusBadRequest)
		return
	}

	errs := validate.Struct(data)
	if errs != nil {
		app.writeResponse(rw, ResponsePayload{Errors: strings.Split(errs.Error(), "\n")}, http.StatusBadRequest)
		return
	}

	// The owner always comes from the verified token, never the payload.
	data.ID = 0
	data.UserID = currentUserID(r)

	err = app.store.CreateContact(&data)
	if err != nil {
		app.writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: data})
}

func (app *App) findContactHandler(rw http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	contact, err := app.store.FindContact(vars["id"])
	if errors.Is(err, gorm.ErrRecordNotFound) {
		app.writeResponse(rw, ResponsePayload{Errors: []string{"contact not found"}}, http.StatusNotFound)
		return
	}

	if err != nil {
		app.writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: contact})
}

func (app *App) listContactsHandler(rw http.ResponseWriter, r *http.Request) {
	contacts, err := app.store.ContactsOwnedBy(currentUserID(r))
	if err != nil {
		app.writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: contacts})
}

func (app *App) updateContactHandler(rw http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	data := make(map[string]interface{})

	err := json.NewDecoder(r.Body).Decode(&data)
	if err != nil {
		app.writeResponse(rw, ResponsePayload{Errors: []string{"request body is required"}}, http.StatusBadRequest)
		return
	}

	removeUnknownFields(data, models.ContactUpdatableFields)
	if len(data) <= 0 {
		app.writeResponse(rw, ResponsePayload{Errors: []string{"valid fields required"}}, http.StatusBadRequest)
		return
	}

	contact, err := app.store.UpdateContact(vars["id"], data)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		app.writeResponse(rw, ResponsePayload{Errors: []string{"contact not found"}}, http.StatusNotFound)
		return
	}

	if err != nil {
		app.writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: contact})
}

func (app *App) deleteContactHandler(rw http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	err := app.store.DeleteContact(vars["id"])
	if errors.Is(err, gorm.ErrRecordNotFound) {
		app.writeResponse(rw, ResponsePayload{Errors: []string{"contact not found"}}, http.StatusNotFound)
		return
	}

	if err != nil {
		app.writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(http.StatusNoContent)
}

func (app *App) uploadPicHandler(rw http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	file, fileHeader, err := r.FormFile("image")
	if err != nil {
		app.writeResponse(rw, ResponsePayload{Errors: []string{"file not found"}}, http.StatusBadRequest)
		return
	}
	defer file.Close()

	pic, err := app.uploader.Upload(r.Context(), UploadRequest{
		ContactID: vars["contactID"],
		File:      file,
		FileName:  fileHeader.Filename,
		Name:      r.FormValue("name"),
		Desc:      r.FormValue("desc"),
		UserID:    currentUserID(r),
	})

	switch {
	case errors.Is(err, ErrNoFile):
		app.writeResponse(rw, ResponsePayload{Errors: []string{"file not found"}}, http.StatusBadRequest)
	case errors.Is(err, gorm.ErrRecordNotFound):
		app.writeResponse(rw, ResponsePayload{Errors: []string{"contact not found"}}, http.StatusNotFound)
	case err != nil:
		app.writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
	default:
		json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: pic})
	}
}

func (app *App) writeTokenResponse(rw http.ResponseWriter, user *models.User) {
	token, err := auth.EncodeJWT(auth.NewTokenClaims(fmt.Sprint(user.ID), user.Email), app.keyPair)
	if err != nil {
		app.writeResponse(rw, ResponsePayload{Errors: []string{err.Error()}}, http.StatusInternalServerError)
		return
	}

	json.NewEncoder(rw).Encode(ResponsePayload{Success: true, Data: map[string]string{"token": token}})
}
