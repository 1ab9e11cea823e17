package messages

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"chefotw/db"
	"chefotw/middleware"
	"chefotw/models"
	"chefotw/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type messageInput struct {
	Text string `json:"text" validate:"required"`
}

// POST /message/:recipientId
func SendMessage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	recipientID, valid := utils.ParseObjectID(ps.ByName("recipientId"))
	if !valid {
		utils.RespondWithError(w, http.StatusBadRequest, "Specified id is not valid")
		return
	}

	var input messageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	// Recipient must exist
	err := db.UserCollection.FindOne(r.Context(), bson.M{"_id": recipientID}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Recipient user not found")
			return
		}
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to find recipient user", err)
		return
	}

	now := time.Now()
	message := models.Message{
		To:        recipientID,
		Text:      input.Text,
		From:      claims.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := db.MessagesCollection.InsertOne(r.Context(), message)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create a new message")
		return
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		message.ID = oid
	}

	utils.RespondWithJSON(w, http.StatusOK, message)
}

// GET /message/:senderId  - messages the sender addressed to the principal
func GetMessages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	recipientID, valid := utils.ParseObjectID(claims.ID)
	if !valid {
		utils.RespondWithError(w, http.StatusBadRequest, "Specified id is not valid")
		return
	}
	senderID := ps.ByName("senderId")
	if _, valid := utils.ParseObjectID(senderID); !valid {
		utils.RespondWithError(w, http.StatusBadRequest, "Specified id is not valid")
		return
	}

	cursor, err := db.MessagesCollection.Find(
		r.Context(),
		bson.M{"from": senderID, "to": recipientID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to fetch the message list")
		return
	}
	defer cursor.Close(r.Context())

	list := []models.Message{}
	for cursor.Next(r.Context()) {
		var message models.Message
		if err := cursor.Decode(&message); err != nil {
			continue
		}
		list = append(list, message)
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}
