package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"socialmall/internal/model"
	"socialmall/internal/monitor"
	"socialmall/internal/repository"
	"socialmall/internal/service/reward"
	"socialmall/pkg/log"
	"socialmall/pkg/snowflake"
	"socialmall/pkg/utils"
)

// CreateOrderRequest checkout request
type CreateOrderRequest struct {
	PaymentMethod   string `json:"payment_method" binding:"required"`
	ShippingAddress string `json:"shipping_address" binding:"required"`
}

// OrderService drives the order lifecycle state machine. Every
// transition that touches reward points runs as one transaction:
// the order-flag compare-and-set, the balance mutation and the ledger
// append all commit or all roll back.
type OrderService interface {
	// Create order from the user's cart
	CreateOrder(ctx context.Context, userID uint64, req *CreateOrderRequest) (*model.Order, error)

	// Record a payment gateway result; success confirms the order and
	// debits redeemed points at most once
	MarkPaymentResult(ctx context.Context, orderID, userID uint64, status string) (*model.Order, error)

	// Advance fulfilment status (admin); delivery pays out attribution
	// rewards at most once
	AdvanceOrderStatus(ctx context.Context, orderID uint64, status string) (*model.Order, error)

	// Cancel order; permitted before shipping, refunds redeemed points
	CancelOrder(ctx context.Context, orderID, userID uint64) (*model.Order, error)

	// Return a delivered order; refunds redemption and reverses
	// attribution rewards
	ReturnOrder(ctx context.Context, orderID, userID uint64) (*model.Order, error)

	// Get order scoped to its owner
	GetOrder(ctx context.Context, orderID, userID uint64) (*model.Order, error)

	// List a user's orders
	ListUserOrders(ctx context.Context, userID uint64, page, pageSize int) ([]*model.Order, int64, error)

	// List all orders (admin)
	ListAllOrders(ctx context.Context, page, pageSize int) ([]*model.Order, int64, error)
}

// orderService order service implementation
type orderService struct {
	repos       *repository.Repos
	txManager   repository.TxManager
	policy      reward.Policy
	idGenerator *snowflake.IDGenerator
}

// NewOrderService creates an order service
func NewOrderService(
	repos *repository.Repos,
	txManager repository.TxManager,
	policy reward.Policy,
	idGenerator *snowflake.IDGenerator,
) OrderService {
	return &orderService{
		repos:       repos,
		txManager:   txManager,
		policy:      policy,
		idGenerator: idGenerator,
	}
}

// CreateOrder snapshots the cart into an order. Prices are taken from
// the catalog at this moment and frozen on the line items; the cart is
// cleared in the same transaction so a retry cannot order twice.
func (s *orderService) CreateOrder(ctx context.Context, userID uint64, req *CreateOrderRequest) (*model.Order, error) {
	if !model.ValidPaymentMethod(req.PaymentMethod) {
		return nil, utils.ErrInvalidParam
	}

	var created *model.Order
	err := s.txManager.RunInTx(ctx, func(r *repository.Repos) error {
		user, err := r.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		cart, err := r.Carts.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if cart == nil || cart.IsEmpty() {
			return utils.ErrCartEmpty
		}

		productIDs := make([]uint64, 0, len(cart.Items))
		for _, item := range cart.Items {
			productIDs = append(productIDs, item.ProductID)
		}
		products, err := r.Products.GetByIDs(ctx, productIDs)
		if err != nil {
			return err
		}
		productByID := make(map[uint64]*model.Product, len(products))
		for _, p := range products {
			productByID[p.ID] = p
		}

		var totalAmount int64
		items := make([]model.OrderItem, 0, len(cart.Items))
		for _, cartItem := range cart.Items {
			product, ok := productByID[cartItem.ProductID]
			if !ok || !product.IsActive() {
				return utils.ErrProductUnavailable
			}
			totalAmount += product.Price * int64(cartItem.Quantity)
			items = append(items, model.OrderItem{
				ProductID:    product.ID,
				Price:        product.Price,
				Quantity:     cartItem.Quantity,
				SourcePostID: cartItem.SourcePostID,
			})
		}

		redeemedPoints := s.policy.MaxRedeemable(totalAmount, user.RewardPoints)

		order := &model.Order{
			OrderNo:         fmt.Sprintf("ORD%d", s.idGenerator.NextID()),
			UserID:          userID,
			TotalAmount:     totalAmount,
			RedeemedPoints:  redeemedPoints,
			FinalAmount:     totalAmount - redeemedPoints,
			OrderStatus:     model.OrderStatusPending,
			PaymentStatus:   model.PaymentStatusPending,
			PaymentMethod:   req.PaymentMethod,
			ShippingAddress: req.ShippingAddress,
			Items:           items,
		}

		if err := r.Orders.Create(ctx, order); err != nil {
			return err
		}
		if err := r.Carts.Clear(ctx, cart.ID); err != nil {
			return err
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"order_no":        created.OrderNo,
		"user_id":         userID,
		"total_amount":    created.TotalAmount,
		"redeemed_points": created.RedeemedPoints,
	}).Info("Order created")
	monitor.RecordOrderTransition(model.OrderStatusPending)

	return created, nil
}

// MarkPaymentResult records the gateway result for a pending order.
// On success the redeemed points are debited exactly once: the
// reward_deducted flag CAS decides the winner, and the balance debit
// carries its own sufficiency guard.
func (s *orderService) MarkPaymentResult(ctx context.Context, orderID, userID uint64, status string) (*model.Order, error) {
	if status != model.PaymentResultSuccess && status != model.PaymentResultFailed {
		return nil, utils.ErrInvalidParam
	}

	err := s.txManager.RunInTx(ctx, func(r *repository.Repos) error {
		order, err := r.Orders.GetByIDForUser(ctx, orderID, userID)
		if err != nil {
			return err
		}
		if !order.IsPending() {
			return utils.ErrAlreadyProcessed
		}

		payment := &model.Payment{
			UserID:        userID,
			OrderID:       order.ID,
			Amount:        order.FinalAmount,
			Status:        status,
			TransactionNo: "TXN-" + uuid.NewString(),
		}
		if err := r.Payments.Create(ctx, payment); err != nil {
			return err
		}

		if status != model.PaymentResultSuccess {
			return nil
		}

		if order.RedeemedPoints > 0 {
			won, err := r.Orders.MarkRewardDeducted(ctx, order.ID)
			if err != nil {
				return err
			}
			if won {
				if err := r.Users.DebitPoints(ctx, order.UserID, order.RedeemedPoints); err != nil {
					return err
				}
				entry := &model.PointTransaction{
					UserID:  order.UserID,
					Points:  order.RedeemedPoints,
					Type:    model.PointTypeRedeem,
					Source:  model.PointSourceOrderRedeem,
					OrderID: order.ID,
				}
				if err := r.Points.Create(ctx, entry); err != nil {
					return err
				}
			}
		}

		applied, err := r.Orders.UpdateStatusFrom(ctx, order.ID,
			[]string{model.OrderStatusPending}, model.OrderStatusConfirmed)
		if err != nil {
			return err
		}
		if !applied {
			return utils.ErrAlreadyProcessed
		}

		return r.Orders.UpdatePaymentStatus(ctx, order.ID, model.PaymentStatusPaid)
	})
	if err != nil {
		return nil, err
	}

	order, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"order_no": order.OrderNo,
		"status":   status,
	}).Info("Payment result recorded")
	monitor.RecordPaymentResult(status)
	if order.OrderStatus == model.OrderStatusConfirmed {
		monitor.RecordOrderTransition(model.OrderStatusConfirmed)
		if order.RedeemedPoints > 0 {
			monitor.RecordPointMovement(model.PointTypeRedeem, order.RedeemedPoints)
		}
	}

	return order, nil
}

// AdvanceOrderStatus moves fulfilment forward one step. Delivery pays
// attribution rewards to post owners, once per order.
func (s *orderService) AdvanceOrderStatus(ctx context.Context, orderID uint64, status string) (*model.Order, error) {
	var from string
	switch status {
	case model.OrderStatusShipped:
		from = model.OrderStatusConfirmed
	case model.OrderStatusDelivered:
		from = model.OrderStatusShipped
	default:
		return nil, utils.ErrInvalidTransition
	}

	var earned []*model.PointTransaction
	err := s.txManager.RunInTx(ctx, func(r *repository.Repos) error {
		order, err := r.Orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}

		applied, err := r.Orders.UpdateStatusFrom(ctx, order.ID, []string{from}, status)
		if err != nil {
			return err
		}
		if !applied {
			return utils.ErrInvalidTransition
		}

		if status != model.OrderStatusDelivered {
			return nil
		}

		won, err := r.Orders.MarkRewardProcessed(ctx, order.ID)
		if err != nil {
			return err
		}
		if !won {
			return nil
		}

		earned, err = s.creditAttributionRewards(ctx, r, order)
		return err
	})
	if err != nil {
		return nil, err
	}

	order, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"order_no": order.OrderNo,
		"status":   status,
	}).Info("Order status advanced")
	monitor.RecordOrderTransition(status)
	for _, entry := range earned {
		monitor.RecordPointMovement(entry.Type, entry.Points)
	}

	return order, nil
}

// creditAttributionRewards credits each line item's post owner. Items
// without a source post and self-purchases earn nothing.
func (s *orderService) creditAttributionRewards(ctx context.Context, r *repository.Repos, order *model.Order) ([]*model.PointTransaction, error) {
	posts, err := s.loadSourcePosts(ctx, r, order)
	if err != nil {
		return nil, err
	}

	var entries []*model.PointTransaction
	for _, item := range order.Items {
		if item.SourcePostID == nil {
			continue
		}
		post, ok := posts[*item.SourcePostID]
		if !ok || post.UserID == order.UserID {
			continue
		}
		points := s.policy.PointsEarnedForSale(item.Price, item.Quantity)
		if points <= 0 {
			continue
		}

		if err := r.Users.CreditPoints(ctx, post.UserID, points); err != nil {
			return nil, err
		}
		entry := &model.PointTransaction{
			UserID:  post.UserID,
			Points:  points,
			Type:    model.PointTypeEarn,
			Source:  model.PointSourcePostSale,
			OrderID: order.ID,
		}
		if err := r.Points.Create(ctx, entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// CancelOrder cancels an order that has not shipped, refunding any
// already-debited redemption.
func (s *orderService) CancelOrder(ctx context.Context, orderID, userID uint64) (*model.Order, error) {
	err := s.txManager.RunInTx(ctx, func(r *repository.Repos) error {
		order, err := r.Orders.GetByIDForUser(ctx, orderID, userID)
		if err != nil {
			return err
		}

		applied, err := r.Orders.UpdateStatusFrom(ctx, order.ID,
			[]string{model.OrderStatusPending, model.OrderStatusConfirmed},
			model.OrderStatusCancelled)
		if err != nil {
			return err
		}
		if !applied {
			return utils.ErrInvalidTransition
		}

		if err := s.refundRedemption(ctx, r, order, model.PointSourceOrderCancel); err != nil {
			return err
		}

		return r.Orders.UpdatePaymentStatus(ctx, order.ID, model.PaymentStatusRefunded)
	})
	if err != nil {
		return nil, err
	}

	order, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"order_no": order.OrderNo,
	}).Info("Order cancelled")
	monitor.RecordOrderTransition(model.OrderStatusCancelled)

	return order, nil
}

// ReturnOrder returns a delivered order. Both reward effects are
// undone: the redemption is refunded and every attribution credit is
// reversed with a REWARD_REVERSAL entry.
func (s *orderService) ReturnOrder(ctx context.Context, orderID, userID uint64) (*model.Order, error) {
	err := s.txManager.RunInTx(ctx, func(r *repository.Repos) error {
		order, err := r.Orders.GetByIDForUser(ctx, orderID, userID)
		if err != nil {
			return err
		}

		applied, err := r.Orders.UpdateStatusFrom(ctx, order.ID,
			[]string{model.OrderStatusDelivered}, model.OrderStatusReturned)
		if err != nil {
			return err
		}
		if !applied {
			return utils.ErrInvalidTransition
		}

		if err := s.refundRedemption(ctx, r, order, model.PointSourceOrderReturn); err != nil {
			return err
		}

		cleared, err := r.Orders.ClearRewardProcessed(ctx, order.ID)
		if err != nil {
			return err
		}
		if cleared {
			if err := s.reverseAttributionRewards(ctx, r, order); err != nil {
				return err
			}
		}

		return r.Orders.UpdatePaymentStatus(ctx, order.ID, model.PaymentStatusRefunded)
	})
	if err != nil {
		return nil, err
	}

	order, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"order_no": order.OrderNo,
	}).Info("Order returned")
	monitor.RecordOrderTransition(model.OrderStatusReturned)

	return order, nil
}

// refundRedemption credits redeemed points back to the buyer, guarded
// by the reward_deducted flag so a refund can only follow a debit.
func (s *orderService) refundRedemption(ctx context.Context, r *repository.Repos, order *model.Order, source string) error {
	if order.RedeemedPoints <= 0 {
		return nil
	}
	cleared, err := r.Orders.ClearRewardDeducted(ctx, order.ID)
	if err != nil {
		return err
	}
	if !cleared {
		return nil
	}

	if err := r.Users.CreditPoints(ctx, order.UserID, order.RedeemedPoints); err != nil {
		return err
	}
	return r.Points.Create(ctx, &model.PointTransaction{
		UserID:  order.UserID,
		Points:  order.RedeemedPoints,
		Type:    model.PointTypeRedeemRefund,
		Source:  source,
		OrderID: order.ID,
	})
}

// reverseAttributionRewards debits each previously-credited post owner.
// The debit keeps the balance guard: if an owner has already spent the
// points the whole return rolls back rather than driving the balance
// negative.
func (s *orderService) reverseAttributionRewards(ctx context.Context, r *repository.Repos, order *model.Order) error {
	posts, err := s.loadSourcePosts(ctx, r, order)
	if err != nil {
		return err
	}

	for _, item := range order.Items {
		if item.SourcePostID == nil {
			continue
		}
		post, ok := posts[*item.SourcePostID]
		if !ok || post.UserID == order.UserID {
			continue
		}
		points := s.policy.PointsEarnedForSale(item.Price, item.Quantity)
		if points <= 0 {
			continue
		}

		if err := r.Users.DebitPoints(ctx, post.UserID, points); err != nil {
			return err
		}
		entry := &model.PointTransaction{
			UserID:  post.UserID,
			Points:  points,
			Type:    model.PointTypeRewardReversal,
			Source:  model.PointSourceOrderReturn,
			OrderID: order.ID,
		}
		if err := r.Points.Create(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

// loadSourcePosts batch-loads the posts referenced by an order's items
func (s *orderService) loadSourcePosts(ctx context.Context, r *repository.Repos, order *model.Order) (map[uint64]*model.Post, error) {
	ids := make([]uint64, 0, len(order.Items))
	for _, item := range order.Items {
		if item.SourcePostID != nil {
			ids = append(ids, *item.SourcePostID)
		}
	}
	posts, err := r.Posts.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*model.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	return byID, nil
}

// GetOrder gets an order scoped to its owner
func (s *orderService) GetOrder(ctx context.Context, orderID, userID uint64) (*model.Order, error) {
	return s.repos.Orders.GetByIDForUser(ctx, orderID, userID)
}

// ListUserOrders lists a user's orders
func (s *orderService) ListUserOrders(ctx context.Context, userID uint64, page, pageSize int) ([]*model.Order, int64, error) {
	return s.repos.Orders.ListByUser(ctx, userID, page, pageSize)
}

// ListAllOrders lists all orders
func (s *orderService) ListAllOrders(ctx context.Context, page, pageSize int) ([]*model.Order, int64, error) {
	return s.repos.Orders.ListAll(ctx, page, pageSize)
}
