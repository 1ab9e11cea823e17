package profile

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"chefotw/db"
	"chefotw/middleware"
	"chefotw/models"
	"chefotw/populate"
	"chefotw/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /profile  - echoes the session principal
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"_id":     claims.ID,
		"email":   claims.Email,
		"name":    claims.Name,
		"address": claims.Address,
		"picture": claims.Picture,
	})
}

// GET /profile/:id
func GetUserProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, valid := utils.ParseObjectID(ps.ByName("id"))
	if !valid {
		utils.RespondWithError(w, http.StatusBadRequest, "Specified id is not valid")
		return
	}

	user, err := populate.User(r.Context(), userID)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "failed to get the user id", err)
		return
	}
	if user == nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, user)
}

// PUT /profile/:id
// The update target is always the session principal, not the path id.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	userID, valid := utils.ParseObjectID(claims.ID)
	if !valid {
		utils.RespondWithError(w, http.StatusBadRequest, "Specified id is not valid")
		return
	}

	var input struct {
		Name    string `json:"name"`
		Address string `json:"address"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var updated models.User
	err := db.UserCollection.FindOneAndUpdate(
		r.Context(),
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{
			"name":      input.Name,
			"address":   input.Address,
			"picture":   input.Picture,
			"updatedAt": time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "failed to update the profile", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, updated.Public())
}

// GET /myService  - services owned by the principal
func MyServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	ownerID, valid := utils.ParseObjectID(claims.ID)
	if !valid {
		utils.RespondWithError(w, http.StatusBadRequest, "Specified id is not valid")
		return
	}

	cursor, err := db.ServicesCollection.Find(r.Context(), bson.M{"owner": ownerID})
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "error getting list of services", err)
		return
	}
	defer cursor.Close(r.Context())

	list := []models.Service{}
	for cursor.Next(r.Context()) {
		var service models.Service
		if err := cursor.Decode(&service); err != nil {
			continue
		}
		list = append(list, service)
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /reservations  - the principal's reservations, populated
func MyReservations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	userID, valid := utils.ParseObjectID(claims.ID)
	if !valid {
		utils.RespondWithError(w, http.StatusBadRequest, "Specified id is not valid")
		return
	}

	cursor, err := db.ReservationsCollection.Find(r.Context(), bson.M{"user": userID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to retrieve reservations", err)
		return
	}
	defer cursor.Close(r.Context())

	list := []models.ReservationPopulated{}
	for cursor.Next(r.Context()) {
		var reservation models.Reservation
		if err := cursor.Decode(&reservation); err != nil {
			continue
		}
		populated, err := populate.Reservation(r.Context(), reservation)
		if err != nil {
			utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to retrieve reservations", err)
			return
		}
		list = append(list, populated)
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}
