package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ivstoyanov/rolodex/internal/models"
	"github.com/ivstoyanov/rolodex/internal/services"
	pkghttp "github.com/ivstoyanov/rolodex/pkg/http"
)

// Action names on GET /home, kept stable for existing clients.
const (
	actionAllUsersDefault                = "getAllUsersOrderedByDefault"
	actionAllUsersSortedByLastNameAndDOB = "getAllUsersSortedByLastNameAndDateOfBirth"
	actionAllUsersFoundByParameter       = "getAllUsersFoundByParameter"
	actionGetSelectedUser                = "getSelectedUser"
)

// DirectoryServiceInterface defines the read operations behind /home
type DirectoryServiceInterface interface {
	ListDefault(ctx context.Context, callerEmail, callerPassword string, page *models.PageRequest) (*models.Page[services.AccountDetails], error)
	ListSorted(ctx context.Context, callerEmail, callerPassword string, page *models.PageRequest) (*models.Page[services.AccountDetails], error)
	Search(ctx context.Context, callerEmail, callerPassword, rawField, value string, page *models.PageRequest) (*models.Page[services.AccountDetails], error)
	GetOne(ctx context.Context, callerEmail, callerPassword, targetEmail string) (*services.AccountDetails, error)
}

// AccountServiceInterface defines the mutating operations behind /home
type AccountServiceInterface interface {
	Delete(ctx context.Context, callerEmail, callerPassword, targetEmail string) error
	Logout(ctx context.Context, callerEmail, callerPassword string) (context.Context, error)
	EditDetails(ctx context.Context, callerEmail, callerPassword, targetEmail string, patch services.EditPatch) (*services.CredentialUpdateView, error)
}

// HomeHandler serves the /home resource: the action-dispatched reads plus
// delete, logout and edit.
type HomeHandler struct {
	directory DirectoryServiceInterface
	accounts  AccountServiceInterface
}

func NewHomeHandler(directory DirectoryServiceInterface, accounts AccountServiceInterface) *HomeHandler {
	return &HomeHandler{
		directory: directory,
		accounts:  accounts,
	}
}

// credentials pulls the caller's email/password pair off the query string.
func credentials(r *http.Request) (string, string) {
	query := r.URL.Query()
	return query.Get("email"), query.Get("password")
}

// pageRequest parses the optional currentPage/sizeOnPage pair. Both absent
// means the legacy unpaginated mode.
func pageRequest(r *http.Request) (*models.PageRequest, error) {
	query := r.URL.Query()
	rawPage := query.Get("currentPage")
	rawSize := query.Get("sizeOnPage")

	if rawPage == "" && rawSize == "" {
		return nil, nil
	}
	if rawPage == "" || rawSize == "" {
		return nil, errors.New("currentPage and sizeOnPage must be supplied together")
	}

	page, err := strconv.Atoi(rawPage)
	if err != nil || page < 0 {
		return nil, errors.New("currentPage must be a non-negative integer")
	}

	size, err := strconv.Atoi(rawSize)
	if err != nil || size <= 0 {
		return nil, errors.New("sizeOnPage must be a positive integer")
	}

	return &models.PageRequest{Page: page, Size: size}, nil
}

// GetUsers handles GET /home
func (h *HomeHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	email, password := credentials(r)
	query := r.URL.Query()

	page, err := pageRequest(r)
	if err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	switch query.Get("action") {
	case actionAllUsersDefault:
		result, err := h.directory.ListDefault(r.Context(), email, password, page)
		if err != nil {
			mapServiceError(w, err)
			return
		}
		pkghttp.WriteJSON(w, http.StatusOK, result)

	case actionAllUsersSortedByLastNameAndDOB:
		result, err := h.directory.ListSorted(r.Context(), email, password, page)
		if err != nil {
			mapServiceError(w, err)
			return
		}
		pkghttp.WriteJSON(w, http.StatusOK, result)

	case actionAllUsersFoundByParameter:
		result, err := h.directory.Search(r.Context(), email, password,
			query.Get("selectedSearchOption"), query.Get("searchTerm"), page)
		if err != nil {
			mapServiceError(w, err)
			return
		}
		pkghttp.WriteJSON(w, http.StatusOK, result)

	case actionGetSelectedUser:
		result, err := h.directory.GetOne(r.Context(), email, password, query.Get("selectedUserEmail"))
		if err != nil {
			mapServiceError(w, err)
			return
		}
		pkghttp.WriteJSON(w, http.StatusOK, result)

	default:
		pkghttp.WriteBadRequest(w, "unknown or missing action")
	}
}

// DeleteUser handles DELETE /home
func (h *HomeHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	email, password := credentials(r)
	target := r.URL.Query().Get("userToDeleteEmail")

	if err := h.accounts.Delete(r.Context(), email, password, target); err != nil {
		mapServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// LogoutUser handles POST /home
func (h *HomeHandler) LogoutUser(w http.ResponseWriter, r *http.Request) {
	email, password := credentials(r)

	if _, err := h.accounts.Logout(r.Context(), email, password); err != nil {
		mapServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// EditUser handles PUT /home
func (h *HomeHandler) EditUser(w http.ResponseWriter, r *http.Request) {
	email, password := credentials(r)
	target := r.URL.Query().Get("emailUserToChange")

	var patch services.EditPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	view, err := h.accounts.EditDetails(r.Context(), email, password, target, patch)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, view)
}

// mapServiceError translates the typed service errors to transport status
// codes.
func mapServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrAccessDenied):
		pkghttp.WriteForbidden(w, "access denied")
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, "resource not found")
	case errors.Is(err, models.ErrAlreadyExists):
		pkghttp.WriteConflict(w, "resource already exists")
	case errors.Is(err, models.ErrMissingParameter):
		pkghttp.WriteBadRequest(w, "missing or unrecognized parameter")
	case errors.Is(err, models.ErrDataValidation):
		pkghttp.WriteInternalError(w, "stored data failed validation")
	default:
		pkghttp.WriteInternalError(w, "internal server error")
	}
}
