package handler

import (
	"errors"

	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/pkg/password"
	"job-portal/internal/pkg/response"
	ucauth "job-portal/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc *ucauth.Service
}

func NewAuthHandler(uc *ucauth.Service) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterCompanyRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/signup", h.CompanySignup)
	r.Post("/login", h.CompanyLogin)
}

func (h *AuthHandler) RegisterInstitutionRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/signup", h.InstitutionSignup)
	r.Post("/login", h.InstitutionLogin)
}

func (h *AuthHandler) CompanySignup(c fiber.Ctx) error {
	var req dto.CompanySignupRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	sess, err := h.uc.SignupCompany(c.Context(), ucauth.CompanySignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		ImageRef: req.ImageRef,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Created(c, "Company registered successfully", dto.CompanySessionResponse{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		Company:   dto.NewCompanyResponse(sess.Company),
	})
}

func (h *AuthHandler) CompanyLogin(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	sess, err := h.uc.LoginCompany(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.OK(c, "Login successful", dto.CompanySessionResponse{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		Company:   dto.NewCompanyResponse(sess.Company),
	})
}

func (h *AuthHandler) InstitutionSignup(c fiber.Ctx) error {
	var req dto.InstitutionSignupRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	sess, err := h.uc.SignupInstitution(c.Context(), ucauth.InstitutionSignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		ImageRef: req.ImageRef,
		Address:  req.Address,
		Phone:    req.Phone,
		Website:  req.Website,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Created(c, "Institution registered successfully", dto.InstitutionSessionResponse{
		Token:       sess.Token,
		ExpiresAt:   sess.ExpiresAt,
		Institution: dto.NewInstitutionResponse(sess.Institution),
	})
}

func (h *AuthHandler) InstitutionLogin(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	sess, err := h.uc.LoginInstitution(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.OK(c, "Login successful", dto.InstitutionSessionResponse{
		Token:       sess.Token,
		ExpiresAt:   sess.ExpiresAt,
		Institution: dto.NewInstitutionResponse(sess.Institution),
	})
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucauth.ErrDuplicateIdentity):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, password.ErrInvalidPassword):
		return validationError(passwordFieldError())
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.BadRequest(messageInvalidPayload, nil, err)
	default:
		return middleware.Internal(err)
	}
}
