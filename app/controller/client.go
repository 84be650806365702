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

type ClientController struct {
	clientService *service.ClientService
	logger        logrus.FieldLogger
}

func NewClientController(clientService *service.ClientService) *ClientController {
	return &ClientController{
		clientService: clientService,
		logger:        factory.NewModuleLogger("clients-controller"),
	}
}

func (c *ClientController) CreateClient(ctx echo.Context) error {
	req, err := types.NewCreateClientRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.clientService.CreateClient(ctx.Request().Context(), req)
	if err != nil {
		return writeServiceError(ctx, c.logger, err, "Create client")
	}

	return ctx.JSON(http.StatusCreated, &types.ClientResponse{Client: mapper.ClientToMessage(item)})
}

func (c *ClientController) ListClients(ctx echo.Context) error {
	items, err := c.clientService.ListClients(ctx.Request().Context())
	if err != nil {
		return writeServiceError(ctx, c.logger, err, "List clients")
	}

	return ctx.JSON(http.StatusOK, &types.ListClientsResponse{Clients: mapper.ClientsToMessages(items)})
}

func (c *ClientController) GetClient(ctx echo.Context) error {
	req, err := types.NewIDRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.clientService.GetClient(ctx.Request().Context(), req.GetId())
	if err != nil {
		return writeServiceError(ctx, c.logger, err, "Get client")
	}

	return ctx.JSON(http.StatusOK, &types.ClientResponse{Client: mapper.ClientToMessage(item)})
}

func (c *ClientController) DeleteClient(ctx echo.Context) error {
	req, err := types.NewIDRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	if err := c.clientService.DeleteClient(ctx.Request().Context(), req.GetId()); err != nil {
		return writeServiceError(ctx, c.logger, err, "Delete client")
	}

	return ctx.JSON(http.StatusOK, &types.MessageResponse{Message: "Client deleted successfully"})
}
