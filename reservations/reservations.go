package reservations

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"chefotw/config"
	"chefotw/db"
	"chefotw/mailer"
	"chefotw/middleware"
	"chefotw/models"
	"chefotw/populate"
	"chefotw/stripe"
	"chefotw/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReservationService handles reservation CRUD and the reserve workflow.
type ReservationService struct {
	cfg      *config.Config
	payments stripe.CheckoutCreator
	mailer   mailer.Sender
}

func NewReservationService(cfg *config.Config, payments stripe.CheckoutCreator, m mailer.Sender) *ReservationService {
	return &ReservationService{cfg: cfg, payments: payments, mailer: m}
}

// POST /services/:serviceId/reserve
func (s *ReservationService) Reserve(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	serviceID, valid := utils.ParseObjectID(ps.ByName("serviceId"))
	if !valid {
		utils.RespondWithError(w, http.StatusBadRequest, "Specified id is not valid")
		return
	}

	var input ReserveInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid reservation data")
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid reservation data")
		return
	}

	wf := NewWorkflow(s.payments, s.mailer, s.cfg.Origin)
	result, err := wf.Run(r.Context(), claims, serviceID, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrServiceNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Service not found")
		case errors.Is(err, ErrInvalidInput):
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid reservation data")
		default:
			var payErr *PaymentError
			if errors.As(err, &payErr) {
				log.Printf("Stripe error: %v", payErr.Err)
				utils.RespondWithError(w, http.StatusInternalServerError, "An error occurred while creating the Stripe checkout session")
				return
			}
			log.Printf("Failed to make a new reservation: %v", err)
			utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to make a new reservation", err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"reservation":       result.Reservation,
		"stripeCheckoutUrl": result.CheckoutURL,
	})
}

// GET /reservations/all
func (s *ReservationService) GetAllReservations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cursor, err := db.ReservationsCollection.Find(r.Context(), bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to fetch reservations", err)
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
			utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to fetch reservations", err)
			return
		}
		list = append(list, populated)
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /reservations/:reservationId  (":reservationId" == "all" lists everything)
func (s *ReservationService) GetReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("reservationId") == "all" {
		s.GetAllReservations(w, r, ps)
		return
	}

	reservationID, valid := utils.ParseObjectID(ps.ByName("reservationId"))
	if !valid {
		utils.RespondWithError(w, http.StatusBadRequest, "Specified id is not valid")
		return
	}

	var reservation models.Reservation
	err := db.ReservationsCollection.FindOne(r.Context(), bson.M{"_id": reservationID}).Decode(&reservation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Reservation not found")
			return
		}
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to find the reservation", err)
		return
	}

	populated, err := populate.Reservation(r.Context(), reservation)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to find the reservation", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, populated)
}

// PUT /reservations/:reservationId
// Recomputes the total and re-sends the confirmation mail on every update.
func (s *ReservationService) UpdateReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservationID, valid := utils.ParseObjectID(ps.ByName("reservationId"))
	if !valid {
		utils.RespondWithError(w, http.StatusBadRequest, "Specified id is not valid")
		return
	}

	var input ReserveInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid reservation data")
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid reservation data")
		return
	}
	date, err := parseDate(input.Date)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid reservation data")
		return
	}

	update := bson.M{
		"fullName":       input.FullName,
		"totalPerson":    input.TotalPerson,
		"pricePerPerson": input.PricePerPerson,
		"totalPrice":     float64(input.TotalPerson) * input.PricePerPerson,
		"date":           date,
		"hour":           input.Hour,
		"updatedAt":      time.Now(),
	}

	var updated models.Reservation
	err = db.ReservationsCollection.FindOneAndUpdate(
		r.Context(),
		bson.M{"_id": reservationID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Reservation not found")
			return
		}
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to update the reservation", err)
		return
	}

	populated, err := populate.Reservation(r.Context(), updated)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to update the reservation", err)
		return
	}

	s.sendUpdateMail(populated)

	utils.RespondWithJSON(w, http.StatusOK, populated)
}

// DELETE /reservations/:reservationId
func (s *ReservationService) DeleteReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservationID, valid := utils.ParseObjectID(ps.ByName("reservationId"))
	if !valid {
		utils.RespondWithError(w, http.StatusBadRequest, "Specified id is not valid")
		return
	}

	res, err := db.ReservationsCollection.DeleteOne(r.Context(), bson.M{"_id": reservationID})
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to delete the reservation", err)
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Reservation not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Reservation with id %s was removed successfully.", reservationID.Hex()),
	})
}

// POST /create-checkout-session
// Standalone checkout endpoint for an already-persisted reservation.
func (s *ReservationService) CreateCheckoutSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		ReservationID string `json:"reservationId" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	reservationID, valid := utils.ParseObjectID(input.ReservationID)
	if !valid {
		utils.RespondWithError(w, http.StatusBadRequest, "Specified id is not valid")
		return
	}

	var reservation models.Reservation
	err := db.ReservationsCollection.FindOne(r.Context(), bson.M{"_id": reservationID}).Decode(&reservation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Reservation not found")
			return
		}
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to find the reservation", err)
		return
	}

	session, err := s.payments.CreateCheckoutSession(
		"",
		reservation.TotalPrice,
		s.cfg.Origin+"/checkout-success",
		s.cfg.Origin+"/services",
	)
	if err != nil {
		log.Printf("Stripe error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An error occurred while creating the checkout session")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"url": session.URL})
}

func (s *ReservationService) sendUpdateMail(populated models.ReservationPopulated) {
	if populated.Service == nil || populated.Service.Owner == nil || populated.User == nil {
		log.Println("reservation update: counter-party missing, skipping mail")
		return
	}

	body := mailer.ReservationUpdateBody(mailer.ReservationDetails{
		OrderedBy:      populated.User.Name,
		UserEmail:      populated.User.Email,
		OwnerName:      populated.Service.Owner.Name,
		OwnerEmail:     populated.Service.Owner.Email,
		Address:        populated.User.Address,
		TotalPerson:    populated.TotalPerson,
		PricePerPerson: populated.PricePerPerson,
		TotalPrice:     populated.TotalPrice,
		Date:           populated.Date,
		Hour:           populated.Hour,
	})

	to := []string{populated.Service.Owner.Email, populated.User.Email}
	if err := s.mailer.Send(to, "Updated Reservation", body); err != nil {
		log.Printf("Error sending updated reservation email: %v", err)
	}
}
