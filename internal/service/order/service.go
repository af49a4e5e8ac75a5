package order

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"time"

	"tapto-backend/internal/domain"
	"tapto-backend/internal/pricing"
	jobrepo "tapto-backend/internal/repository/job"
	orderrepo "tapto-backend/internal/repository/order"
	"tapto-backend/internal/tracking"
)

// Service owns the order lifecycle: checkout, the status state machine,
// cancellation, driver assignment and the courier-position read model.
type Service struct {
	repo         orderRepo
	catalog      catalogRepo
	addresses    addressRepo
	drivers      driverRepo
	jobs         jobRepo
	confirmDelay time.Duration
	logger       *log.Logger
	now          func() time.Time
}

type orderRepo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	Update(ctx context.Context, o domain.Order) (*domain.Order, error)
}

type catalogRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type addressRepo interface {
	GetByID(ctx context.Context, id, userID string) (*domain.Address, error)
}

type driverRepo interface {
	GetByID(ctx context.Context, id string) (*domain.DeliveryDriver, error)
}

type jobRepo interface {
	Create(ctx context.Context, orderID, kind string, runAt time.Time) (*jobrepo.Job, error)
}

func New(repo orderrepo.Repository, catalog catalogRepo, addresses addressRepo, drivers driverRepo, jobs jobRepo, confirmDelay time.Duration, logger *log.Logger) *Service {
	return &Service{
		repo:         repo,
		catalog:      catalog,
		addresses:    addresses,
		drivers:      drivers,
		jobs:         jobs,
		confirmDelay: confirmDelay,
		logger:       logger,
		now:          time.Now,
	}
}

// transitions is the explicit adjacency table of the status state machine.
// Anything not listed is rejected with ErrInvalidTransition. Cancellation is
// reachable from every non-terminal, non-delivered state; a delivered order
// can only be refunded. refunded has no outgoing edges, so cancelling a
// refunded order is rejected too — deliberately stricter than only blocking
// delivered and cancelled.
var transitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.StatusPending:        {domain.StatusConfirmed, domain.StatusCancelled},
	domain.StatusConfirmed:      {domain.StatusProcessing, domain.StatusCancelled},
	domain.StatusProcessing:     {domain.StatusShipped, domain.StatusCancelled},
	domain.StatusShipped:        {domain.StatusOutForDelivery, domain.StatusCancelled},
	domain.StatusOutForDelivery: {domain.StatusDelivered, domain.StatusCancelled},
	domain.StatusDelivered:      {domain.StatusRefunded},
}

func canTransition(from, to domain.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// statusEvents maps a target status to the tracking event it appends.
// Statuses without an entry transition silently.
var statusEvents = map[domain.OrderStatus]domain.TrackingEvent{
	domain.StatusConfirmed: {
		Status:      "Order Confirmed",
		Description: "Payment confirmed and order is being processed",
		Location:    "Payment Gateway",
	},
	domain.StatusProcessing: {
		Status:      "Processing",
		Description: "Your items are being picked and packed",
		Location:    "TapTo Warehouse, Kathmandu",
	},
	domain.StatusShipped: {
		Status:      "Shipped",
		Description: "Package handed over to delivery partner",
		Location:    "TapTo Distribution Hub",
	},
	domain.StatusOutForDelivery: {
		Status:      "Out for Delivery",
		Description: "Delivery partner is on the way",
		Location:    "Kathmandu Delivery Hub",
	},
	domain.StatusDelivered: {
		Status:      "Delivered",
		Description: "Package successfully delivered",
		Location:    "Customer Address",
	},
}

// defaultDriver is the stand-in courier identity used when an order goes out
// for delivery before an operator assigned a real driver.
var defaultDriver = domain.DeliveryPerson{
	Name:    "Rajesh Kumar",
	Phone:   "+977 98XXXXXXXX",
	Vehicle: "Bike - KTM 1234",
	Rating:  4.8,
}

type ItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

type CreateInput struct {
	Items           []ItemInput             `json:"items"`
	AddressID       string                  `json:"addressId,omitempty"`
	ShippingAddress *domain.ShippingAddress `json:"shippingAddress,omitempty"`
	PaymentMethodID string                  `json:"paymentMethodId,omitempty"`
	PaymentMethod   *domain.PaymentMethod   `json:"paymentMethod,omitempty"`
}

// Create runs checkout: every line is snapshotted from the catalog at this
// instant, the shipping address is resolved from the user's address book or
// taken inline, totals are computed from the destination country and the
// order is persisted as pending with its first tracking event. A delayed
// confirmation job is scheduled as a row; failing to schedule it is logged
// and swallowed, never surfaced to the buyer.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, domain.Invalid("order requires at least one item")
	}

	items := make([]domain.OrderItem, 0, len(in.Items))
	lines := make([]pricing.Line, 0, len(in.Items))
	for _, li := range in.Items {
		if li.Quantity <= 0 {
			return nil, domain.Invalid("quantity must be positive")
		}
		product, err := s.catalog.GetByID(ctx, li.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.OrderItem{
			ProductID:    li.ProductID,
			ProductName:  product.Name,
			ProductImage: product.FirstImage(),
			Quantity:     li.Quantity,
			UnitPrice:    product.Price,
			Size:         li.Size,
			Color:        li.Color,
		})
		lines = append(lines, pricing.Line{UnitPrice: product.Price, Quantity: li.Quantity})
	}

	shipping, err := s.resolveShipping(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	payment, err := resolvePayment(in)
	if err != nil {
		return nil, err
	}

	now := s.now()
	totals := pricing.ComputeTotals(lines, shipping.Country)
	order := domain.Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: shipping,
		PaymentMethod:   payment,
		Subtotal:        totals.Subtotal,
		ShippingFee:     totals.ShippingFee,
		Tax:             totals.Tax,
		Total:           totals.Total,
		Status:          domain.StatusPending,
		Tracking: []domain.TrackingEvent{{
			Status:      "Order Placed",
			Description: "Your order has been received and confirmed",
			Location:    "TapTo Online Platform",
			Timestamp:   now,
		}},
	}

	created, err := s.createWithTrackingNumber(ctx, order, now)
	if err != nil {
		return nil, err
	}

	if _, err := s.jobs.Create(ctx, created.ID, jobrepo.KindConfirmOrder, now.Add(s.confirmDelay)); err != nil {
		s.logger.Printf("order service: schedule confirm job order=%s err=%v", created.ID, err)
	}
	return created, nil
}

// createWithTrackingNumber regenerates the tracking number on a uniqueness
// collision instead of failing checkout.
func (s *Service) createWithTrackingNumber(ctx context.Context, order domain.Order, now time.Time) (*domain.Order, error) {
	for i := 0; i < 5; i++ {
		number, err := generateTrackingNumber(now)
		if err != nil {
			return nil, err
		}
		order.TrackingNumber = number
		created, err := s.repo.Create(ctx, order)
		if err == nil {
			return created, nil
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			continue
		}
		return nil, err
	}
	return nil, errors.New("tracking number collision")
}

func (s *Service) resolveShipping(ctx context.Context, userID string, in CreateInput) (domain.ShippingAddress, error) {
	if in.AddressID != "" {
		addr, err := s.addresses.GetByID(ctx, in.AddressID, userID)
		if err != nil {
			return domain.ShippingAddress{}, err
		}
		return domain.ShippingAddress{
			ID:       addr.ID,
			FullName: addr.FullName,
			Phone:    addr.Phone,
			Street:   addr.Street,
			City:     addr.City,
			State:    addr.State,
			ZipCode:  addr.ZipCode,
			Country:  addr.Country,
		}, nil
	}
	if in.ShippingAddress == nil {
		return domain.ShippingAddress{}, domain.Invalid("shipping address is required")
	}
	return *in.ShippingAddress, nil
}

func resolvePayment(in CreateInput) (domain.PaymentMethod, error) {
	if in.PaymentMethod != nil {
		return *in.PaymentMethod, nil
	}
	if in.PaymentMethodID == "" {
		return domain.PaymentMethod{}, domain.Invalid("payment method is required")
	}
	return domain.PaymentMethod{ID: in.PaymentMethodID}, nil
}

const trackingAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func generateTrackingNumber(now time.Time) (string, error) {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = trackingAlphabet[int(b)%len(trackingAlphabet)]
	}
	return fmt.Sprintf("TRK-%d-%s", now.Year(), buf), nil
}

// UpdateStatus advances the order through the state machine, appending the
// target status's tracking event and applying its side effects. Transitions
// absent from the table fail with ErrInvalidTransition.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !canTransition(order.Status, status) {
		return nil, domain.ErrInvalidTransition
	}

	now := s.now()
	order.Status = status
	if ev, ok := statusEvents[status]; ok {
		ev.Timestamp = now
		order.Tracking = append(order.Tracking, ev)
	}

	switch status {
	case domain.StatusOutForDelivery:
		if order.DeliveryPerson == nil {
			dp := defaultDriver
			order.DeliveryPerson = &dp
		}
		if order.LiveLocation == nil {
			origin := tracking.Origin()
			origin.LastUpdated = now
			order.LiveLocation = &origin
		}
	case domain.StatusDelivered:
		order.DeliveredAt = &now
	}

	return s.repo.Update(ctx, *order)
}

// ConfirmPending is the body of the delayed confirmation job. It re-checks
// that the order is still pending so a restart or an admin acting first
// makes the job a no-op rather than a misfire.
func (s *Service) ConfirmPending(ctx context.Context, orderID string) error {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != domain.StatusPending {
		return nil
	}
	_, err = s.UpdateStatus(ctx, orderID, domain.StatusConfirmed)
	return err
}

// Cancel marks the order cancelled with a reason and one tracking event.
// Delivered and terminal orders cannot be cancelled.
func (s *Service) Cancel(ctx context.Context, orderID, reason string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !canTransition(order.Status, domain.StatusCancelled) {
		return nil, domain.ErrInvalidTransition
	}

	order.Status = domain.StatusCancelled
	order.CancellationReason = reason
	order.Tracking = append(order.Tracking, domain.TrackingEvent{
		Status:      "Cancelled",
		Description: fmt.Sprintf("Order cancelled. Reason: %s", reason),
		Location:    "System",
		Timestamp:   s.now(),
	})
	return s.repo.Update(ctx, *order)
}

// AssignDriver overwrites the order's courier identity with the directory
// entry. It is independent of the state machine and appends no tracking
// event; the customer-visible rating is a placeholder until reviews exist.
func (s *Service) AssignDriver(ctx context.Context, orderID, driverID string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	driver, err := s.drivers.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	order.DeliveryPerson = &domain.DeliveryPerson{
		DriverID:  driver.ID,
		Name:      driver.Name,
		Phone:     driver.Phone,
		Vehicle:   driver.VehicleNumber,
		Rating:    5,
		AvatarURL: driver.AvatarURL,
	}
	return s.repo.Update(ctx, *order)
}

// TrackingInfo is the courier snapshot returned to the customer.
type TrackingInfo struct {
	OrderID           string                 `json:"orderId"`
	DeliveryPerson    *domain.DeliveryPerson `json:"deliveryPerson"`
	CurrentLocation   *domain.GeoPoint       `json:"currentLocation"`
	Destination       domain.GeoPoint        `json:"destination"`
	DistanceRemaining string                 `json:"distanceRemaining"`
	EstimatedTime     string                 `json:"estimatedTime"`
	Timeline          []domain.TrackingEvent `json:"timeline"`
}

// Track is a pure read of the courier position; the simulation that moves
// the position runs in the background worker, never here.
func (s *Service) Track(ctx context.Context, orderID string) (*TrackingInfo, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	position := tracking.Origin()
	if order.LiveLocation != nil {
		position = *order.LiveLocation
	}
	distance := tracking.DistanceKm(position, tracking.Destination())

	return &TrackingInfo{
		OrderID:           order.ID,
		DeliveryPerson:    order.DeliveryPerson,
		CurrentLocation:   order.LiveLocation,
		Destination:       tracking.Destination(),
		DistanceRemaining: fmt.Sprintf("%.1f km", distance),
		EstimatedTime:     fmt.Sprintf("%d mins", tracking.ETAMinutes(distance)),
		Timeline:          order.Tracking,
	}, nil
}

// UpdateLiveLocation unconditionally overwrites the courier position, for
// out-of-band driver-reported coordinates.
func (s *Service) UpdateLiveLocation(ctx context.Context, orderID string, lat, lng float64) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.LiveLocation = &domain.GeoPoint{Lat: lat, Lng: lng, LastUpdated: s.now()}
	return s.repo.Update(ctx, *order)
}

// AdvanceDeliveries moves every out-for-delivery courier one simulation step
// toward the destination. Per-order failures are logged and skipped so one
// bad row never stalls the rest.
func (s *Service) AdvanceDeliveries(ctx context.Context) {
	orders, err := s.repo.ListByStatus(ctx, domain.StatusOutForDelivery)
	if err != nil {
		s.logger.Printf("order service: list out-for-delivery err=%v", err)
		return
	}
	now := s.now()
	for _, order := range orders {
		position := tracking.Origin()
		if order.LiveLocation != nil {
			position = *order.LiveLocation
		}
		next := tracking.Advance(position, now)
		order.LiveLocation = &next
		if _, err := s.repo.Update(ctx, order); err != nil {
			s.logger.Printf("order service: advance delivery order=%s err=%v", order.ID, err)
		}
	}
}

// GetForUser returns the order if it belongs to the user or the caller is an
// admin; otherwise ErrNotFound, so order existence does not leak.
func (s *Service) GetForUser(ctx context.Context, orderID, userID string, isAdmin bool) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// ListMine returns the user's orders, newest first.
func (s *Service) ListMine(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListAll returns every order, for the back office.
func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListAll(ctx)
}
