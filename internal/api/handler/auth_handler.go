package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gourmetcare/platform/internal/api/metrics"
	"github.com/gourmetcare/platform/internal/api/middleware"
	"github.com/gourmetcare/platform/internal/core/domain"
	"github.com/gourmetcare/platform/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	production  bool
}

// NewAuthHandler wires the auth endpoints. production controls the Secure
// cookie attribute and suppresses the OTP echo in responses.
func NewAuthHandler(authService ports.AuthService, production bool) *AuthHandler {
	return &AuthHandler{authService: authService, production: production}
}

// SendCode issues a verification code for an email or phone number.
//
// @Summary      Send a verification code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      sendCodeRequest  true  "Email or phone number"
// @Success      201   {object}  apiResponse
// @Failure      400   {object}  map[string]interface{}
// @Router       /auth/send-code [post]
func (h *AuthHandler) SendCode(c echo.Context) error {
	var req sendCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" && req.PhoneNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "either email or phone number is required")
	}

	identifier, channel := req.Email, "email"
	if identifier == "" {
		identifier, channel = req.PhoneNumber, "phone"
	}

	code, err := h.authService.SendVerificationCode(c.Request().Context(), identifier)
	if err != nil {
		return err
	}
	metrics.OTPIssuedTotal.WithLabelValues(channel).Inc()

	data := sendCodeResponse{Email: req.Email, PhoneNumber: req.PhoneNumber}
	if !h.production {
		data.Code = code
	}

	return c.JSON(http.StatusCreated, apiResponse{
		Success: true,
		Message: "OTP sent successfully",
		Data:    data,
	})
}

// Register creates a new account after verifying the OTP.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  apiResponse
// @Failure      400   {object}  map[string]interface{}
// @Failure      409   {object}  map[string]interface{}
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.Register(c.Request().Context(), ports.Registration{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Code:        req.Code,
	})
	if err != nil {
		if err == domain.ErrInvalidVerificationCode {
			metrics.OTPFailuresTotal.Inc()
		}
		return err
	}
	metrics.RegistrationsTotal.Inc()

	h.setAuthCookie(c, token)
	return c.JSON(http.StatusCreated, apiResponse{
		Success: true,
		Message: "user created successfully",
		Data:    authData{User: user, AccessToken: token},
	})
}

// Login authenticates an existing account with email and OTP.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  apiResponse
// @Failure      400   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]interface{}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		if err == domain.ErrInvalidVerificationCode {
			metrics.OTPFailuresTotal.Inc()
		}
		return err
	}
	metrics.LoginsTotal.Inc()

	h.setAuthCookie(c, token)
	return c.JSON(http.StatusOK, apiResponse{
		Success: true,
		Message: "user logged in successfully",
		Data:    authData{User: user, AccessToken: token},
	})
}

// Logout clears the access token cookie. Tokens are not revocable
// server-side; the client discards its copy and the cookie is expired.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  apiResponse
// @Failure     401  {object}  map[string]interface{}
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := ctxPrincipal(c); err != nil {
		return err
	}

	cookie := h.authCookie("")
	cookie.MaxAge = -1
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, apiResponse{
		Success: true,
		Message: "user logged out successfully",
	})
}

func (h *AuthHandler) setAuthCookie(c echo.Context, token string) {
	c.SetCookie(h.authCookie(token))
}

// authCookie builds the token cookie: httpOnly always, Secure only in
// production, SameSite=Strict, path=/.
func (h *AuthHandler) authCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteStrictMode,
	}
}
