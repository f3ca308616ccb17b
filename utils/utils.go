package utils

import (
	"encoding/json"
	"net/http"

	"grantsproject/models"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New()
}

// DecodeAndValidate decodes the request body into a structure and validates it
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		HandleMessageResponse(w, err.Error(), http.StatusBadRequest)
		return err
	}
	if err := Validate.Struct(v); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)

		for _, e := range validationErrors {
			errorMessages[e.Field()] = e.Tag()
		}
		HandleValidationResponse(w, http.StatusBadRequest, errorMessages)
		return err
	}
	return nil
}

// DecodeUpdateFields decodes a partial-update body into a field map for a
// $set, stripping keys a client must never overwrite.
func DecodeUpdateFields(w http.ResponseWriter, r *http.Request) (bson.M, error) {
	var fields bson.M
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		HandleMessageResponse(w, err.Error(), http.StatusBadRequest)
		return nil, err
	}

	delete(fields, "_id")
	delete(fields, "id")
	delete(fields, "grant_id")
	delete(fields, "section_id")

	if len(fields) == 0 {
		HandleMessageResponse(w, "No updatable fields in request body", http.StatusBadRequest)
		return nil, http.ErrBodyNotAllowed
	}

	return fields, nil
}

// HandleMessageResponse handles both success and error responses
func HandleMessageResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	response := models.NewMessageResponse(statusCode, message)
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// HandleValidationResponse handles validation errors response for struct validation
func HandleValidationResponse(w http.ResponseWriter, statusCode int, validationErrors interface{}) {
	w.Header().Set("Content-Type", "application/json")
	response := models.NewValidationResponse(statusCode, validationErrors)
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// HandleDataResponse handles success responses with data
func HandleDataResponse(w http.ResponseWriter, message string, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	response := models.NewDataResponse(statusCode, message, data)
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// HandleListResponse handles success responses for collections
func HandleListResponse(w http.ResponseWriter, message string, count int, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	response := models.NewListResponse(statusCode, message, count, data)
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}
