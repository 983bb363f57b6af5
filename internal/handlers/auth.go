// auth.go
//
// A scalable, high performance drop-in replacement for the agri-monitor nextjs data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of fieldwise.
// fieldwise is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// fieldwise is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with fieldwise.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/fieldwise/internal/middleware"
	"github.com/localnerve/fieldwise/internal/models"
	"github.com/localnerve/fieldwise/internal/services"
	"github.com/localnerve/fieldwise/internal/utils"
	"gorm.io/gorm"
)

// AuthHandler handles signup, signin and the session projection
type AuthHandler struct {
	DB            *gorm.DB
	JWTSecret     []byte
	SessionMaxAge time.Duration
}

type signupRequest struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup handles POST /api/auth/signup
// Rejections are plain-text 400s to stay wire compatible with the nextjs
// route the frontend was built against.
// @Summary Register a new user
// @Description Create a user account; username and email must be unique
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body signupRequest true "Signup"
// @Success 200 {object} models.User
// @Failure 400 {string} string "Missing fields / Username already exists / Email id already exists"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Missing fields")
	}

	if req.FullName == "" || req.Username == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Missing fields")
	}

	user := models.User{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
	}

	if err := services.CreateUser(h.DB, &user, req.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			return c.Status(fiber.StatusBadRequest).SendString("Username already exists")
		case errors.Is(err, services.ErrEmailTaken):
			return c.Status(fiber.StatusBadRequest).SendString("Email id already exists")
		default:
			log.Printf("Error creating user: %v", err)
			return utils.ErrorResponse(c, "Failed to create user", fiber.StatusInternalServerError, "signup")
		}
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// Signin handles POST /api/auth/signin
// @Summary Sign in with username and password
// @Description Verify credentials and set the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body signinRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/signin [post]
func (h *AuthHandler) Signin(c *fiber.Ctx) error {
	var req signinRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "auth.validation.input")
	}

	if req.Username == "" || req.Password == "" {
		return utils.ErrorResponse(c, "username and password are required", fiber.StatusBadRequest, "auth.validation.input")
	}

	user, err := services.Authenticate(h.DB, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return utils.ErrorResponse(c, "Invalid credentials", fiber.StatusUnauthorized, "auth.credentials")
		}
		log.Printf("Error authenticating user: %v", err)
		return utils.ErrorResponse(c, "Failed to sign in", fiber.StatusInternalServerError, "signin")
	}

	token, err := services.IssueSessionToken(h.JWTSecret, user.ID, h.SessionMaxAge)
	if err != nil {
		log.Printf("Error issuing session token: %v", err)
		return utils.ErrorResponse(c, "Failed to sign in", fiber.StatusInternalServerError, "signin")
	}

	c.Cookie(&fiber.Cookie{
		Name:     services.SessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(h.SessionMaxAge),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": fiber.Map{
			"id":       user.ID,
			"fullName": user.FullName,
			"username": user.Username,
		},
	})
}

// Signout handles POST /api/auth/signout
// @Summary Sign out
// @Description Clear the session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/signout [post]
func (h *AuthHandler) Signout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     services.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}

// GetSession handles GET /api/auth/session
// Resolves the current session to a safe user projection with the nested
// field list. A missing or invalid session is not an error; the response is
// {"user": null} and the caller treats it as "not authenticated".
// @Summary Current session user
// @Description Resolve the session to a user projection (password excluded) with nested fields
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/session [get]
func (h *AuthHandler) GetSession(c *fiber.Ctx) error {
	token := middleware.SessionToken(c)
	if token == "" {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"user": nil})
	}

	userID, err := services.ParseSessionToken(h.JWTSecret, token)
	if err != nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"user": nil})
	}

	user, err := services.GetUserProjection(h.DB, userID)
	if err != nil {
		log.Printf("Error fetching user: %v", err)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"user": nil})
	}
	if user == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"user": nil})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"user": user})
}
