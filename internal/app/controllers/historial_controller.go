package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HenryFerreira/bedelias-backend/internal/app/models/dto"
	"github.com/HenryFerreira/bedelias-backend/internal/app/services"
	"github.com/HenryFerreira/bedelias-backend/internal/middleware"
)

// HistorialController handles academic history operations
type HistorialController struct {
	historialService *services.HistorialService
}

// NewHistorialController creates a new HistorialController
func NewHistorialController(historialService *services.HistorialService) *HistorialController {
	return &HistorialController{
		historialService: historialService,
	}
}

// ListarHistorial returns the full history of the student in the path.
func (c *HistorialController) ListarHistorial(ctx *gin.Context) {
	estudianteID, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	entradas, err := c.historialService.ListarHistorial(ctx, estudianteID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(entradas))
}

// ActualizarEntrada upserts one history entry for the student.
func (c *HistorialController) ActualizarEntrada(ctx *gin.Context) {
	estudianteID, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.HistorialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid historial data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	entrada, err := c.historialService.ActualizarEntrada(ctx, estudianteID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(entrada))
}
