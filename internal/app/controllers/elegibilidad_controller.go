package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/HenryFerreira/bedelias-backend/internal/app/models/dto"
	"github.com/HenryFerreira/bedelias-backend/internal/app/services"
	"github.com/HenryFerreira/bedelias-backend/internal/middleware"
)

// ElegibilidadController exposes the eligibility engine over HTTP.
type ElegibilidadController struct {
	elegibilidadService *services.ElegibilidadService
}

// NewElegibilidadController creates a new ElegibilidadController
func NewElegibilidadController(elegibilidadService *services.ElegibilidadService) *ElegibilidadController {
	return &ElegibilidadController{
		elegibilidadService: elegibilidadService,
	}
}

// ComputarElegibilidad evaluates the catalog (optionally filtered by
// the semestre query parameter) against the student's history.
func (c *ElegibilidadController) ComputarElegibilidad(ctx *gin.Context) {
	estudianteID, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var semestre *int
	if raw := ctx.Query("semestre"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid semestre filter")
			errorDetail = errorDetail.WithDetails("semestre must be a positive number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		semestre = &value
	}

	resp, err := c.elegibilidadService.ComputarElegibilidad(ctx, estudianteID, semestre)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// VerificarSeleccion runs the merged eligibility and schedule-conflict
// check over an explicit candidate selection.
func (c *ElegibilidadController) VerificarSeleccion(ctx *gin.Context) {
	estudianteID, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.SeleccionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid selection data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.elegibilidadService.VerificarSeleccion(ctx, estudianteID, req.MateriaIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
