package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/HenryFerreira/bedelias-backend/internal/app/models/dto"
	"github.com/HenryFerreira/bedelias-backend/internal/app/services"
	"github.com/HenryFerreira/bedelias-backend/internal/middleware"
)

// MateriaController handles catalog operations
type MateriaController struct {
	materiaService *services.MateriaService
}

// NewMateriaController creates a new MateriaController
func NewMateriaController(materiaService *services.MateriaService) *MateriaController {
	return &MateriaController{
		materiaService: materiaService,
	}
}

// ListarMaterias returns the catalog, optionally filtered by the
// semestre query parameter.
func (c *MateriaController) ListarMaterias(ctx *gin.Context) {
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

	materias, err := c.materiaService.ListarMaterias(ctx, semestre)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(materias))
}

// ObtenerMateria returns one materia by id.
func (c *MateriaController) ObtenerMateria(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	materia, err := c.materiaService.ObtenerMateria(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(materia))
}

// CrearMateria creates a materia with its previas and horarios.
func (c *MateriaController) CrearMateria(ctx *gin.Context) {
	var req dto.MateriaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid materia data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	materia, err := c.materiaService.CrearMateria(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(materia))
}

// ActualizarMateria replaces a materia, its previas and horarios.
func (c *MateriaController) ActualizarMateria(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.MateriaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid materia data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	materia, err := c.materiaService.ActualizarMateria(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(materia))
}

// EliminarMateria deletes a materia that nothing references.
func (c *MateriaController) EliminarMateria(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.materiaService.EliminarMateria(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Materia eliminada"}))
}
