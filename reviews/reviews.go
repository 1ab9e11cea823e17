package reviews

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"chefotw/db"
	"chefotw/middleware"
	"chefotw/models"
	"chefotw/populate"
	"chefotw/services"
	"chefotw/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type createReviewInput struct {
	Description string `json:"description"`
	ServiceID   string `json:"serviceId" validate:"required"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
}

type updateReviewInput struct {
	Description *string `json:"description"`
	Rating      *int    `json:"rating" validate:"omitnil,min=1,max=5"`
}

// POST /reviews
func AddReview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input createReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid review data")
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid review data")
		return
	}

	serviceID, valid := utils.ParseObjectID(input.ServiceID)
	if !valid {
		utils.RespondWithError(w, http.StatusBadRequest, "Specified id is not valid")
		return
	}
	ownerID, valid := utils.ParseObjectID(claims.ID)
	if !valid {
		utils.RespondWithError(w, http.StatusBadRequest, "Specified id is not valid")
		return
	}

	wf := NewWorkflow()
	result, err := wf.Run(r.Context(), claims, serviceID, ownerID, input.Description, input.Rating)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Service not found")
			return
		}
		log.Printf("error creating the review: %v", err)
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "error creating the review", err)
		return
	}

	services.InvalidateCache(serviceID)
	utils.RespondWithJSON(w, http.StatusCreated, result.Service)
}

// GET /reviews
func GetReviews(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cursor, err := db.ReviewsCollection.Find(r.Context(), bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "error getting the list of reviews", err)
		return
	}
	defer cursor.Close(r.Context())

	list := []models.ReviewPopulated{}
	for cursor.Next(r.Context()) {
		var review models.Review
		if err := cursor.Decode(&review); err != nil {
			continue
		}
		owner, err := populate.User(r.Context(), review.Owner)
		if err != nil {
			utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "error getting the list of reviews", err)
			return
		}
		list = append(list, review.Populated(owner))
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /reviews/:reviewId
func GetReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reviewID, valid := utils.ParseObjectID(ps.ByName("reviewId"))
	if !valid {
		utils.RespondWithError(w, http.StatusBadRequest, "Specified id is not valid")
		return
	}

	var review models.Review
	err := db.ReviewsCollection.FindOne(r.Context(), bson.M{"_id": reviewID}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Review not found")
			return
		}
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "error getting details of a review", err)
		return
	}

	owner, err := populate.User(r.Context(), review.Owner)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "error getting details of a review", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, review.Populated(owner))
}

// PUT /reviews/:reviewId
func EditReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reviewID, valid := utils.ParseObjectID(ps.ByName("reviewId"))
	if !valid {
		utils.RespondWithError(w, http.StatusBadRequest, "Specified id is not valid")
		return
	}

	var input updateReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid update data")
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid update data")
		return
	}

	// Only the provided fields change
	set := bson.M{"updatedAt": time.Now()}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.Rating != nil {
		set["rating"] = *input.Rating
	}

	var updated models.Review
	err := db.ReviewsCollection.FindOneAndUpdate(
		r.Context(),
		bson.M{"_id": reviewID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Review not found")
			return
		}
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "error updating review", err)
		return
	}

	services.InvalidateCache(updated.Service)
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /reviews/:reviewId
// The parent service keeps the dangling id; population skips it.
func DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reviewID, valid := utils.ParseObjectID(ps.ByName("reviewId"))
	if !valid {
		utils.RespondWithError(w, http.StatusBadRequest, "Specified id is not valid")
		return
	}

	var review models.Review
	err := db.ReviewsCollection.FindOneAndDelete(r.Context(), bson.M{"_id": reviewID}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Review not found")
			return
		}
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "error deleting review", err)
		return
	}

	services.InvalidateCache(review.Service)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Review with id %s was removed successfully.", reviewID.Hex()),
	})
}
