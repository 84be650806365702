package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-services/app/factory"
	"github.com/vibast-solutions/ms-go-services/app/mapper"
	"github.com/vibast-solutions/ms-go-services/app/service"
	"github.com/vibast-solutions/ms-go-services/app/types"
)

type CatalogController struct {
	catalogService *service.CatalogService
	logger         logrus.FieldLogger
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		logger:         factory.NewModuleLogger("catalog-controller"),
	}
}

func (c *CatalogController) CreateService(ctx echo.Context) error {
	req, err := types.NewCreateServiceRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.catalogService.CreateService(ctx.Request().Context(), req)
	if err != nil {
		return writeServiceError(ctx, c.logger, err, "Create service")
	}

	return ctx.JSON(http.StatusCreated, &types.ServiceResponse{Service: mapper.ServiceToMessage(item)})
}

func (c *CatalogController) ListServices(ctx echo.Context) error {
	items, err := c.catalogService.ListServices(ctx.Request().Context())
	if err != nil {
		return writeServiceError(ctx, c.logger, err, "List services")
	}

	return ctx.JSON(http.StatusOK, &types.ListServicesResponse{Services: mapper.ServicesToMessages(items)})
}

func (c *CatalogController) GetService(ctx echo.Context) error {
	req, err := types.NewIDRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.catalogService.GetService(ctx.Request().Context(), req.GetId())
	if err != nil {
		return writeServiceError(ctx, c.logger, err, "Get service")
	}

	return ctx.JSON(http.StatusOK, &types.ServiceResponse{Service: mapper.ServiceToMessage(item)})
}

func (c *CatalogController) UpdateService(ctx echo.Context) error {
	req, err := types.NewUpdateServiceRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.catalogService.UpdateService(ctx.Request().Context(), req)
	if err != nil {
		return writeServiceError(ctx, c.logger, err, "Update service")
	}

	return ctx.JSON(http.StatusOK, &types.ServiceResponse{Service: mapper.ServiceToMessage(item)})
}

func (c *CatalogController) DeleteService(ctx echo.Context) error {
	req, err := types.NewIDRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	if err := c.catalogService.DeleteService(ctx.Request().Context(), req.GetId()); err != nil {
		return writeServiceError(ctx, c.logger, err, "Delete service")
	}

	return ctx.JSON(http.StatusOK, &types.MessageResponse{Message: "Service deleted successfully"})
}

func (c *CatalogController) CreatePlan(ctx echo.Context) error {
	req, err := types.NewCreatePlanRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.catalogService.CreatePlan(ctx.Request().Context(), req)
	if err != nil {
		return writeServiceError(ctx, c.logger, err, "Create plan")
	}

	return ctx.JSON(http.StatusCreated, &types.PlanResponse{Plan: mapper.PlanToMessage(item)})
}

func (c *CatalogController) ListPlans(ctx echo.Context) error {
	req, err := types.NewListPlansRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid query params")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.catalogService.ListPlans(ctx.Request().Context(), req.GetPlanType())
	if err != nil {
		return writeServiceError(ctx, c.logger, err, "List plans")
	}

	return ctx.JSON(http.StatusOK, &types.ListPlansResponse{Plans: mapper.PlansToMessages(items)})
}

func (c *CatalogController) GetPlan(ctx echo.Context) error {
	req, err := types.NewIDRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.catalogService.GetPlan(ctx.Request().Context(), req.GetId())
	if err != nil {
		return writeServiceError(ctx, c.logger, err, "Get plan")
	}

	return ctx.JSON(http.StatusOK, &types.PlanResponse{Plan: mapper.PlanToMessage(item)})
}

func (c *CatalogController) UpdatePlan(ctx echo.Context) error {
	req, err := types.NewUpdatePlanRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.catalogService.UpdatePlan(ctx.Request().Context(), req)
	if err != nil {
		return writeServiceError(ctx, c.logger, err, "Update plan")
	}

	return ctx.JSON(http.StatusOK, &types.PlanResponse{Plan: mapper.PlanToMessage(item)})
}

func (c *CatalogController) DeletePlan(ctx echo.Context) error {
	req, err := types.NewIDRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	if err := c.catalogService.DeletePlan(ctx.Request().Context(), req.GetId()); err != nil {
		return writeServiceError(ctx, c.logger, err, "Delete plan")
	}

	return ctx.JSON(http.StatusOK, &types.MessageResponse{Message: "Plan deleted successfully"})
}
