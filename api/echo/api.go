//nolint:varnamelen
package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"go.edulab.hu/coachdesk/domain"
	"go.edulab.hu/coachdesk/services"
)

// DashboardAPI struct to hold dependencies.
type DashboardAPI struct {
	auth          *services.AuthService
	tokens        *services.TokenService
	batches       domain.BatchRepository
	students      domain.StudentRepository
	passkeyHasher services.PasswordHasher
}

// NewDashboardAPI initializes the dashboard API.
func NewDashboardAPI(
	auth *services.AuthService,
	tokens *services.TokenService,
	batches domain.BatchRepository,
	students domain.StudentRepository,
	passkeyHasher services.PasswordHasher,
) *DashboardAPI {
	return &DashboardAPI{
		auth:          auth,
		tokens:        tokens,
		batches:       batches,
		students:      students,
		passkeyHasher: passkeyHasher,
	}
}

// RegisterRoutes registers the dashboard routes.
func (a *DashboardAPI) RegisterRoutes(e *echo.Echo) {
	e.POST("/auth/sign-up", a.SignUpHandler)
	e.POST("/guardian/login", a.GuardianLoginHandler)

	authed := e.Group("", a.RequireToken)
	authed.GET("/batch/all", a.ListBatchesHandler, a.RequireAccount)
	authed.POST("/batch/new", a.CreateBatchHandler, a.RequireAccount)
	authed.GET("/batch/:id", a.GetBatchHandler)
	authed.PATCH("/batch/edit/:id", a.UpdateBatchHandler, a.RequireAccount)
	authed.DELETE("/batch/delete/:id", a.DeleteBatchHandler, a.RequireAccount)

	authed.GET("/student/all", a.ListStudentsHandler, a.RequireAccount)
	authed.POST("/student/new", a.CreateStudentHandler, a.RequireAccount)
	authed.GET("/student/:id", a.GetStudentHandler)
	authed.PATCH("/student/edit/:id", a.UpdateStudentHandler)
	authed.DELETE("/student/delete/:id", a.DeleteStudentHandler, a.RequireAccount)
}

// SignUpHandler registers a new account and sets the session cookie.
func (a *DashboardAPI) SignUpHandler(c echo.Context) error {
	var in services.SignUpInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("Cannot parse request body"))
	}

	user, session, err := a.auth.SignUp(c.Request().Context(), in)
	if err != nil {
		return a.writeError(c, err)
	}

	setSessionCookie(c, session)

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"user": echo.Map{
			"id":    user.ID.Hex(),
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
			"plan":  user.Plan,
		},
	})
}

// GuardianLoginHandler authenticates a guardian by phone number and passkey.
func (a *DashboardAPI) GuardianLoginHandler(c echo.Context) error {
	var in struct {
		PhoneNumber string `json:"phone_number"`
		Passkey     string `json:"passkey"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("Cannot parse request body"))
	}

	_, session, err := a.auth.GuardianLogin(c.Request().Context(), in.PhoneNumber, in.Passkey)
	if err != nil {
		return a.writeError(c, err)
	}

	setSessionCookie(c, session)

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"token":   session.Token,
	})
}

// ListBatchesHandler returns every batch of the authenticated account.
func (a *DashboardAPI) ListBatchesHandler(c echo.Context) error {
	identity := IdentityFromContext(c)

	batches, err := a.batches.ListByOwner(c.Request().Context(), identity.SubjectID)
	if err != nil {
		return a.writeError(c, err)
	}
	return c.JSON(http.StatusOK, batches)
}

// CreateBatchHandler inserts a new batch for the authenticated account.
func (a *DashboardAPI) CreateBatchHandler(c echo.Context) error {
	identity := IdentityFromContext(c)

	fields := map[string]any{}
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("Cannot parse request body"))
	}

	batch, err := a.batches.Create(c.Request().Context(), identity.SubjectID, fields)
	if err != nil {
		return a.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, batch)
}

// GetBatchHandler returns a single batch by id.
func (a *DashboardAPI) GetBatchHandler(c echo.Context) error {
	batch, err := a.batches.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return a.writeError(c, err)
	}
	return c.JSON(http.StatusOK, batch)
}

// UpdateBatchHandler applies a sanitized patch to a batch of the
// authenticated account.
func (a *DashboardAPI) UpdateBatchHandler(c echo.Context) error {
	identity := IdentityFromContext(c)

	input := map[string]any{}
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("Cannot parse request body"))
	}

	patch := domain.SanitizePatch(input, domain.BatchPatchRules)
	if err := a.batches.Update(c.Request().Context(), c.Param("id"), identity.SubjectID, patch); err != nil {
		return a.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Batch updated successfully"})
}

// DeleteBatchHandler removes a batch of the authenticated account.
func (a *DashboardAPI) DeleteBatchHandler(c echo.Context) error {
	identity := IdentityFromContext(c)

	if err := a.batches.Delete(c.Request().Context(), c.Param("id"), identity.SubjectID); err != nil {
		return a.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Batch deleted successfully"})
}

// ListStudentsHandler returns the roster of the authenticated account.
func (a *DashboardAPI) ListStudentsHandler(c echo.Context) error {
	identity := IdentityFromContext(c)

	students, err := a.students.ListByOwner(c.Request().Context(), identity.SubjectID)
	if err != nil {
		return a.writeError(c, err)
	}
	return c.JSON(http.StatusOK, students)
}

// CreateStudentHandler inserts a new roster entry. A submitted passkey is
// hashed before it reaches the repository.
func (a *DashboardAPI) CreateStudentHandler(c echo.Context) error {
	identity := IdentityFromContext(c)

	fields := map[string]any{}
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("Cannot parse request body"))
	}

	if passkey, ok := fields["passkey"].(string); ok && passkey != "" {
		hash, err := a.passkeyHasher.Hash(passkey)
		if err != nil {
			return a.writeError(c, err)
		}
		fields["passkey"] = hash
	}

	student, err := a.students.Create(c.Request().Context(), identity.SubjectID, fields)
	if err != nil {
		return a.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, student)
}

// GetStudentHandler returns a single student by id. The lookup is id-only;
// any authenticated caller holding a valid id reads the record.
func (a *DashboardAPI) GetStudentHandler(c echo.Context) error {
	student, err := a.students.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return a.writeError(c, err)
	}
	return c.JSON(http.StatusOK, student)
}

// UpdateStudentHandler applies a sanitized patch to a student record.
func (a *DashboardAPI) UpdateStudentHandler(c echo.Context) error {
	input := map[string]any{}
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("Cannot parse request body"))
	}

	patch := domain.SanitizePatch(input, domain.StudentPatchRules)
	delete(patch, "passkey") // passkeys change through the login flow only

	if err := a.students.Update(c.Request().Context(), c.Param("id"), patch); err != nil {
		return a.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Student updated successfully"})
}

// DeleteStudentHandler removes a student of the authenticated account.
func (a *DashboardAPI) DeleteStudentHandler(c echo.Context) error {
	identity := IdentityFromContext(c)

	if err := a.students.Delete(c.Request().Context(), c.Param("id"), identity.SubjectID); err != nil {
		return a.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Student deleted successfully"})
}

func errorBody(message string) echo.Map {
	return echo.Map{"error": message}
}

// writeError translates domain errors to status codes. Unexpected failures
// return a generic message without leaking internals.
func (a *DashboardAPI) writeError(c echo.Context, err error) error {
	if _, ok := domain.IsAuthError(err); ok {
		return c.JSON(http.StatusUnauthorized, errorBody("Unauthorized"))
	}
	if ve, ok := domain.IsValidationError(err); ok {
		return c.JSON(http.StatusBadRequest, errorBody(ve.Message))
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.JSON(http.StatusNotFound, errorBody("Not found"))
	}
	if errors.Is(err, domain.ErrEmailTaken) {
		return c.JSON(http.StatusBadRequest, errorBody("Email already registered"))
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return c.JSON(http.StatusUnauthorized, errorBody("Incorrect passkey"))
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("Unexpected handler error")
	return c.JSON(http.StatusInternalServerError, errorBody("Internal server error"))
}
