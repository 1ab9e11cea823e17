package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"chefotw/filemgr"
	"chefotw/globals"
	"chefotw/mailer"
	"chefotw/middleware"
	"chefotw/models"
	"chefotw/rdx"
	"chefotw/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 6 * time.Hour

type signupInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Name     string `validate:"required"`
	Address  string
}

type loginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// POST /auth/signup (multipart, optional picture file)
func (s *AuthService) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	input := signupInput{
		Email:    strings.ToLower(strings.TrimSpace(r.FormValue("email"))),
		Password: r.FormValue("password"),
		Name:     r.FormValue("name"),
		Address:  r.FormValue("address"),
	}

	if err := utils.ValidateStruct(input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Provide email, password and name")
		return
	}

	if !validEmailProvider(input.Email) {
		utils.RespondWithError(w, http.StatusBadRequest, "Please sign up with a valid email from one of the supported providers")
		return
	}

	if !validPassword(input.Password) {
		utils.RespondWithError(w, http.StatusBadRequest, "Password must have at least 6 characters and contain at least one number, one lowercase and one uppercase letter.")
		return
	}

	// Check the user store if an account with the same email already exists
	existing, err := s.users.FindByEmail(r.Context(), input.Email)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Database error", err)
		return
	}
	if existing != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "User already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Hash error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not process password")
		return
	}

	pictureURL, err := filemgr.PictureFromForm(r)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusBadRequest, "Failed to store picture", err)
		return
	}

	now := time.Now()
	user := models.User{
		Email:     input.Email,
		Password:  string(hashedPassword),
		Name:      input.Name,
		Address:   input.Address,
		Picture:   pictureURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The unique email index backs up the pre-check against races
	if err := s.users.Insert(r.Context(), &user); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			utils.RespondWithError(w, http.StatusBadRequest, "User already exists.")
			return
		}
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to register user", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"user": user.Public()})

	// Welcome mail must never fail the registration
	go func() {
		body := mailer.WelcomeBody(user.Name, s.cfg.MailUsername)
		if err := s.mailer.Send([]string{user.Email}, "Welcome to Chef On The Way", body); err != nil {
			log.Printf("Error sending welcome email: %v", err)
		}
	}()
}

// POST /auth/login
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input loginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := utils.ValidateStruct(input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Provide email and password.")
		return
	}

	storedUser, err := s.users.FindByEmail(r.Context(), strings.ToLower(input.Email))
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Database error", err)
		return
	}
	if storedUser == nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedUser.Password), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unable to authenticate the user")
		return
	}

	tokenString, err := IssueToken(*storedUser)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	if err := rdx.RdxHset("tokki", storedUser.ID.Hex(), tokenString); err != nil {
		log.Printf("Redis token storage failed: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"authToken": tokenString})
}

// GET /auth/verify  - echoes the decoded principal
func (s *AuthService) Verify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, claims)
}

// IssueToken signs a 6-hour session token embedding the user's public fields.
func IssueToken(user models.User) (string, error) {
	now := time.Now()
	claims := &middleware.Claims{
		ID:      user.ID.Hex(),
		Email:   user.Email,
		Name:    user.Name,
		Address: user.Address,
		Picture: user.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}
