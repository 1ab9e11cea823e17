package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"chefotw/db"
	"chefotw/filemgr"
	"chefotw/globals"
	"chefotw/models"
	"chefotw/populate"
	"chefotw/rdx"
	"chefotw/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const cacheTTL = 10 * time.Minute

func cacheKey(id string) string { return "service:" + id }

type serviceInput struct {
	Speciality     string  `validate:"required"`
	Place          string  `validate:"required"`
	Description    string  `validate:"required"`
	PricePerPerson float64 `validate:"required,gt=0"`
	Availability   string  `validate:"required"`
}

func parseServiceForm(r *http.Request) (serviceInput, error) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return serviceInput{}, err
	}
	price, _ := strconv.ParseFloat(r.FormValue("pricePerPerson"), 64)
	input := serviceInput{
		Speciality:     r.FormValue("speciality"),
		Place:          r.FormValue("place"),
		Description:    r.FormValue("description"),
		PricePerPerson: price,
		Availability:   r.FormValue("availability"),
	}
	return input, utils.ValidateStruct(input)
}

// POST /services
func CreateService(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	ownerID, valid := utils.ParseObjectID(userID)
	if !valid {
		utils.RespondWithError(w, http.StatusBadRequest, "Specified id is not valid")
		return
	}

	input, err := parseServiceForm(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Provide speciality, place, description, price per person and availability")
		return
	}

	picture := r.FormValue("picture")
	if uploaded, err := filemgr.PictureFromForm(r); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusBadRequest, "Failed to store picture", err)
		return
	} else if uploaded != "" {
		picture = uploaded
	}

	now := time.Now()
	service := models.Service{
		Picture:        picture,
		Speciality:     input.Speciality,
		Place:          input.Place,
		Description:    input.Description,
		PricePerPerson: input.PricePerPerson,
		Owner:          ownerID,
		Availability:   input.Availability,
		Reviews:        []primitive.ObjectID{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	res, err := db.ServicesCollection.InsertOne(r.Context(), service)
	if err != nil {
		log.Printf("error creating a new service: %v", err)
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "error creating a new service", err)
		return
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		service.ID = oid
	}

	// Back-reference the service on its owner
	if _, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"_id": ownerID},
		bson.M{"$set": bson.M{"service": service.ID}},
	); err != nil {
		log.Printf("failed to link service %s to owner: %v", service.ID.Hex(), err)
	}

	utils.RespondWithJSON(w, http.StatusCreated, service)
}

// GET /services
func GetServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cursor, err := db.ServicesCollection.Find(r.Context(), bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "error getting list of services", err)
		return
	}
	defer cursor.Close(r.Context())

	list := []models.ServicePopulated{}
	for cursor.Next(r.Context()) {
		var service models.Service
		if err := cursor.Decode(&service); err != nil {
			continue
		}
		owner, err := populate.User(r.Context(), service.Owner)
		if err != nil {
			utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "error getting list of services", err)
			return
		}
		list = append(list, service.Populated(owner, nil))
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /services/:serviceId
func GetService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	serviceID, valid := utils.ParseObjectID(ps.ByName("serviceId"))
	if !valid {
		utils.RespondWithError(w, http.StatusBadRequest, "Specified id is not valid")
		return
	}

	if cached, err := rdx.RdxGet(cacheKey(serviceID.Hex())); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, cached)
		return
	}

	var service models.Service
	err := db.ServicesCollection.FindOne(r.Context(), bson.M{"_id": serviceID}).Decode(&service)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Service not found")
			return
		}
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "error getting details of service", err)
		return
	}

	owner, err := populate.User(r.Context(), service.Owner)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "error getting details of service", err)
		return
	}
	reviews, err := populate.ServiceReviews(r.Context(), service.Reviews)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "error getting details of service", err)
		return
	}
	populated := service.Populated(owner, reviews)

	if data, err := json.Marshal(populated); err == nil {
		if err := rdx.RdxSetTTL(cacheKey(serviceID.Hex()), string(data), cacheTTL); err != nil {
			log.Printf("service cache write failed: %v", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, populated)
}

// PUT /services/:serviceId
func UpdateService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	serviceID, valid := utils.ParseObjectID(ps.ByName("serviceId"))
	if !valid {
		utils.RespondWithError(w, http.StatusBadRequest, "Specified id is not valid")
		return
	}

	input, err := parseServiceForm(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Provide speciality, place, description, price per person and availability")
		return
	}

	update := bson.M{
		"speciality":     input.Speciality,
		"place":          input.Place,
		"description":    input.Description,
		"pricePerPerson": input.PricePerPerson,
		"availability":   input.Availability,
		"updatedAt":      time.Now(),
	}
	if uploaded, err := filemgr.PictureFromForm(r); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusBadRequest, "Failed to store picture", err)
		return
	} else if uploaded != "" {
		update["picture"] = uploaded
	}

	var updated models.Service
	err = db.ServicesCollection.FindOneAndUpdate(
		r.Context(),
		bson.M{"_id": serviceID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Service not found")
			return
		}
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "error updating service", err)
		return
	}

	InvalidateCache(serviceID)
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /services/:serviceId
// Deletion does not cascade to reservations or reviews; their references
// are tolerated as orphans.
func DeleteService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	serviceID, valid := utils.ParseObjectID(ps.ByName("serviceId"))
	if !valid {
		utils.RespondWithError(w, http.StatusBadRequest, "Specified id is not valid")
		return
	}

	res, err := db.ServicesCollection.DeleteOne(r.Context(), bson.M{"_id": serviceID})
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "failed to delete", err)
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Service not found")
		return
	}

	InvalidateCache(serviceID)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Service with id %s was removed successfully.", serviceID.Hex()),
	})
}

// InvalidateCache drops the cached populated document for a service.
func InvalidateCache(serviceID primitive.ObjectID) {
	if _, err := rdx.RdxDel(cacheKey(serviceID.Hex())); err != nil {
		log.Printf("Cache deletion failed for service %s: %v", serviceID.Hex(), err)
	}
}
