package http

import (
	"net/http"
	"strings"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	return s.createOrder(c, &actor)
}

// CreateGuestOrder handles POST /orders/public. No credentials are needed; the
// body must name the customer.
func (s *Server) CreateGuestOrder(c echo.Context) error {
	return s.createOrder(c, nil)
}

func (s *Server) createOrder(c echo.Context, actor *kernel.Actor) error {
	var req CreateOrderRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	serviceType := order.ServiceUnknown
	if strings.TrimSpace(req.Service) != "" {
		parsed, err := s.normalizer.ParseServiceType(req.Service)
		if err != nil {
			return err
		}
		serviceType = parsed
	}
	lines, err := s.lineItems(req.Items)
	if err != nil {
		return err
	}

	var hint *services.CustomerHint
	if strings.TrimSpace(req.CustomerName) != "" || strings.TrimSpace(req.CustomerMobile) != "" {
		hint = &services.CustomerHint{Name: req.CustomerName, Mobile: req.CustomerMobile}
	}

	cmd, err := commands.NewCreateOrderCommand(actor, hint, addressDetails(req.Address), serviceType, lines)
	if err != nil {
		return err
	}
	created, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	details := queries.FromAggregate(created.Order, created.Customer, s.normalizer)
	return c.JSON(http.StatusOK, toOrderResponse(details))
}

// ListOrders handles GET /orders.
func (s *Server) ListOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var params struct {
		Status     *string
		Service    *string
		CustomerID *int64
		Search     *string
		Skip       *int
		Limit      *int
	}
	values := c.QueryParams()
	for name, dest := range map[string]any{
		"status":      &params.Status,
		"service":     &params.Service,
		"customer_id": &params.CustomerID,
		"search":      &params.Search,
		"skip":        &params.Skip,
		"limit":       &params.Limit,
	} {
		if err = runtime.BindQueryParameter("form", true, false, name, values, dest); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(name, err)
		}
	}

	var filter queries.OrderFilter
	if params.Status != nil {
		status, parseErr := s.normalizer.ParseStatus(*params.Status)
		if parseErr != nil {
			return parseErr
		}
		filter.Status = &status
	}
	if params.Service != nil {
		service, parseErr := s.normalizer.ParseServiceType(*params.Service)
		if parseErr != nil {
			return parseErr
		}
		filter.Service = &service
	}
	if params.CustomerID != nil {
		id := kernel.ID(*params.CustomerID)
		filter.CustomerID = &id
	}
	if params.Search != nil {
		filter.Search = *params.Search
	}
	if params.Skip != nil {
		filter.Skip = *params.Skip
	}
	if params.Limit != nil {
		filter.Limit = *params.Limit
	}

	query, err := queries.NewListOrdersQuery(actor, filter)
	if err != nil {
		return err
	}
	page, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := OrderListResponse{
		Orders: make([]OrderResponse, len(page.Orders)),
		Total:  page.Total,
		Skip:   page.Skip,
		Limit:  page.Limit,
	}
	for i, details := range page.Orders {
		response.Orders[i] = toOrderResponse(details)
	}
	return c.JSON(http.StatusOK, response)
}

// GetOrder handles GET /orders/{id}.
func (s *Server) GetOrder(c echo.Context) error {
	details, err := s.readOrder(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(details))
}

// GetOrderItems handles GET /orders/{id}/items.
func (s *Server) GetOrderItems(c echo.Context) error {
	details, err := s.readOrder(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponses(details.Items))
}

// UpdateOrder handles PUT /orders/{id}.
func (s *Server) UpdateOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateOrderRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	update, err := s.orderUpdate(req)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderCommand(actor, id, update)
	if err != nil {
		return err
	}
	if _, err = s.handlers.UpdateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(c, actor, id)
}

// ChangeStatus handles PATCH /orders/{id}/status.
func (s *Server) ChangeStatus(c echo.Context) error {
	var req StatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	target, err := s.normalizer.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	return s.changeStatus(c, target)
}

// quickAction serves POST /orders/{id}/confirm and its siblings.
func (s *Server) quickAction(target order.Status) echo.HandlerFunc {
	return func(c echo.Context) error {
		return s.changeStatus(c, target)
	}
}

func (s *Server) changeStatus(c echo.Context, target order.Status) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeOrderStatusCommand(actor, id, target)
	if err != nil {
		return err
	}
	if _, err = s.handlers.ChangeStatus.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(c, actor, id)
}

// UpdateOrderItem handles PUT /orders/{id}/items/{itemId}.
func (s *Server) UpdateOrderItem(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}

	var req UpdateItemRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	change := order.ItemChange{
		Category: req.CategoryName,
		Product:  req.ProductName,
		Quantity: req.Quantity,
	}
	if req.Service != "" {
		if change.ServiceType, err = s.normalizer.ParseServiceType(req.Service); err != nil {
			return err
		}
	}
	if req.Status != "" {
		if change.Status, err = s.normalizer.ParseItemStatus(req.Status); err != nil {
			return err
		}
	}

	cmd, err := commands.NewUpdateOrderItemCommand(actor, id, itemID, change)
	if err != nil {
		return err
	}
	item, err := s.handlers.UpdateItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponse(queries.ItemFromAggregate(item, s.normalizer)))
}

// DeleteOrder handles DELETE /orders/{id}.
func (s *Server) DeleteOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteOrderCommand(actor, id)
	if err != nil {
		return err
	}
	if err = s.handlers.DeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) readOrder(c echo.Context) (queries.OrderDetails, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return queries.OrderDetails{}, err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return queries.OrderDetails{}, err
	}
	query, err := queries.NewGetOrderQuery(actor, id)
	if err != nil {
		return queries.OrderDetails{}, err
	}
	return s.handlers.GetOrder.Handle(c.Request().Context(), query)
}

// respondWithOrder answers a write with the stored projection of the order.
func (s *Server) respondWithOrder(c echo.Context, actor kernel.Actor, id kernel.ID) error {
	query, err := queries.NewGetOrderQuery(actor, id)
	if err != nil {
		return err
	}
	details, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(details))
}

func (s *Server) orderUpdate(req UpdateOrderRequest) (services.OrderUpdate, error) {
	var update services.OrderUpdate
	if req.Status != nil {
		status, err := s.normalizer.ParseStatus(*req.Status)
		if err != nil {
			return update, err
		}
		update.Status = &status
	}
	if req.Service != nil {
		service, err := s.normalizer.ParseServiceType(*req.Service)
		if err != nil {
			return update, err
		}
		update.ServiceType = &service
	}
	if req.Address != nil {
		details := addressDetails(*req.Address)
		update.Address = &details
	}
	if req.Items != nil {
		patches := make([]services.ItemPatch, 0, len(*req.Items))
		for _, item := range *req.Items {
			line, err := s.lineItem(item)
			if err != nil {
				return update, err
			}
			patch := services.ItemPatch{
				Category:    line.Category,
				Product:     line.Product,
				Quantity:    line.Quantity,
				ServiceType: line.ServiceType,
				Status:      line.Status,
			}
			if item.ID != nil {
				patch.ID = kernel.ID(*item.ID)
			}
			patches = append(patches, patch)
		}
		update.Items = patches
	}
	return update, nil
}

func (s *Server) lineItems(items []ItemRequest) ([]order.LineItem, error) {
	lines := make([]order.LineItem, 0, len(items))
	for _, item := range items {
		line, err := s.lineItem(item)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (s *Server) lineItem(item ItemRequest) (order.LineItem, error) {
	line := order.LineItem{
		Category: item.CategoryName,
		Product:  item.ProductName,
		Quantity: item.Quantity,
	}
	var err error
	if item.Service != "" {
		if line.ServiceType, err = s.normalizer.ParseServiceType(item.Service); err != nil {
			return line, err
		}
	}
	if item.Status != "" {
		if line.Status, err = s.normalizer.ParseItemStatus(item.Status); err != nil {
			return line, err
		}
	}
	return line, nil
}

func addressDetails(a AddressRequest) order.AddressDetails {
	return order.AddressDetails{
		Name:     a.Name,
		Mobile:   a.Mobile,
		Line1:    a.Line1,
		Line2:    a.Line2,
		Landmark: a.Landmark,
		City:     a.City,
		State:    a.State,
		Pincode:  a.Pincode,
	}
}

func pathID(c echo.Context, name string) (kernel.ID, error) {
	var id int64
	if err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationPath, c.Param(name), &id); err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.ID(id), kernel.ID(id).Validate()
}

func bindBody(c echo.Context, dest any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dest); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return nil
}
