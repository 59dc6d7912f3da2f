package handlers

import (
	"database/sql"
	"errors"
	"io"
	"net/http"

	intconfig "flexvry/internal/config"
	"flexvry/internal/domain"
	"flexvry/internal/domain/models"
	"flexvry/internal/http/middleware"
	"flexvry/internal/mail"
	"flexvry/internal/repositories"
	"flexvry/internal/services"

	"github.com/gin-gonic/gin"
)

// ReservationHandler mounts the reservation endpoints. Services are built per
// request so the request id travels into every log line.
type ReservationHandler struct {
	Env    intconfig.Env
	Sender mail.Sender
}

func (h ReservationHandler) svc(c *gin.Context) services.ReservationService {
	return services.ReservationService{
		Repo: repositories.ReservationRepository{DB: intconfig.DB},
		Mail: mail.MailService{
			Sender:       h.Sender,
			DashboardURL: h.Env.DashboardURL,
		},
		AdminEmail:   h.Env.AdminEmail,
		DefaultLimit: h.Env.DefaultPageSize,
		RequestID:    middleware.GetRequestID(c),
	}
}

// POST /api/reservations
func (h ReservationHandler) Create(c *gin.Context) {
	var input models.Reservation
	if !BindJSONOrError(c, &input) {
		return
	}

	created, err := h.svc(c).Create(input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GET /api/reservations?page&limit&search&date
func (h ReservationHandler) List(c *gin.Context) {
	result, err := h.svc(c).List(
		c.Query("page"),
		c.Query("limit"),
		c.Query("search"),
		c.Query("date"),
	)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/reservations/email/:email
func (h ReservationHandler) GetByEmail(c *gin.Context) {
	list, err := h.svc(c).GetByEmail(c.Param("email"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/reservations/:id
func (h ReservationHandler) GetOne(c *gin.Context) {
	res, err := h.svc(c).GetByID(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// PATCH /api/reservations/:id
func (h ReservationHandler) Update(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		RespondError(c, http.StatusBadRequest, "body kosong", err)
		return
	}

	res, err := h.svc(c).Update(c.Param("id"), raw)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type updateStatusInput struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// PATCH /api/reservations/:id/status
func (h ReservationHandler) UpdateStatus(c *gin.Context) {
	var input updateStatusInput
	if !BindJSONOrError(c, &input) {
		return
	}

	res, err := h.svc(c).UpdateStatus(c.Param("id"), input.Status, input.Notes)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DELETE /api/reservations/:id
func (h ReservationHandler) Delete(c *gin.Context) {
	if err := h.svc(c).Delete(c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reservasi berhasil dihapus"})
}

// GET /api/reservations/:id/slip
func (h ReservationHandler) GetSlipPDF(c *gin.Context) {
	docs := services.DocsService{
		Repo:      repositories.ReservationRepository{DB: intconfig.DB},
		RequestID: middleware.GetRequestID(c),
	}

	pdf, filename, err := docs.GenerateSlip(c.Param("id"))
	if err != nil {
		RespondDomainError(c, mapDocsErr(err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// mapDocsErr translates raw store errors from the docs path; DocsService talks
// to the repository directly without the service-layer mapping.
func mapDocsErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: "reservation", Err: err}
	}
	return err
}
