package handler

import (
	"context"
	"fmt"
	"strconv"

	"appointment-service/internal/module/booking/models/request"
	"appointment-service/internal/module/booking/usecases"
	"appointment-service/internal/pkg/errors"
	"appointment-service/internal/pkg/helpers"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type BookingHandler struct {
	Log       *otelzap.Logger
	Validator *validator.Validate
	Usecase   usecases.Usecase
	Publish   message.Publisher
}

func (h *BookingHandler) CreateBooking(ctx *fiber.Ctx) error {
	var req request.CreateBooking
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	userID := ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.CreateBooking(ctx.UserContext(), &req, userID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error create booking: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success create booking")
}

func (h *BookingHandler) CancelBooking(ctx *fiber.Ctx) error {
	var req request.CancelBooking
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	userID := ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.CancelBooking(ctx.UserContext(), &req, userID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error cancel booking: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success cancel booking")
}

func (h *BookingHandler) RescheduleBooking(ctx *fiber.Ctx) error {
	var req request.RescheduleBooking
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	userID := ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.RescheduleBooking(ctx.UserContext(), &req, userID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error reschedule booking: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success reschedule booking")
}

func (h *BookingHandler) ShowBookings(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.ShowBookings(ctx.UserContext(), userID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error show bookings: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success show bookings")
}

func (h *BookingHandler) ShowBookingDetail(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(int64)
	bookingID := ctx.Params("booking_id")

	resp, err := h.Usecase.ShowBookingDetail(ctx.UserContext(), bookingID, userID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error show booking detail: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success show booking detail")
}

func (h *BookingHandler) CheckAvailability(ctx *fiber.Ctx) error {
	serviceID, err := strconv.ParseInt(ctx.Query("service_id"), 10, 64)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse service id: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse service id"))
	}
	staffID, _ := strconv.ParseInt(ctx.Query("staff_id"), 10, 64)

	req := request.CheckAvailability{
		ServiceID: serviceID,
		Date:      ctx.Query("date"),
		StaffID:   staffID,
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	resp, err := h.Usecase.CheckAvailability(ctx.UserContext(), &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error check availability: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success check availability")
}

// PaymentCallback receives the gateway's browser redirect or server-to-server
// call. The HTTP answer is always 200 when the callback could be processed;
// the payload carries the business outcome, which may well be a failed
// payment.
func (h *BookingHandler) PaymentCallback(ctx *fiber.Ctx) error {
	params := ctx.Queries()

	resp, err := h.Usecase.ProcessPaymentCallback(ctx.UserContext(), params)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error process payment callback: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, resp.Message)
}

func (h *BookingHandler) CountPendingPayment(ctx *fiber.Ctx) error {
	serviceID, err := strconv.ParseInt(ctx.Query("service_id"), 10, 64)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse service id: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse service id"))
	}

	resp, err := h.Usecase.CountPendingPayment(ctx.UserContext(), serviceID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error count pending payment: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success count pending payment")
}

// ConsumePaymentCallbackQueue handles gateway notifications delivered over
// the broker. Undecodable payloads go to the poison queue.
func (h *BookingHandler) ConsumePaymentCallbackQueue(msg *message.Message) error {
	msg.Ack()

	var req request.PaymentCallback
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error unmarshal message: %v", err))
		h.publishPoisoned(msg, err)
		return err
	}

	ctx := context.Background()

	if _, err := h.Usecase.ProcessPaymentCallback(ctx, req.Params); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error consume payment callback queue: %v", err))
		h.publishPoisoned(msg, err)
		return err
	}

	return nil
}

func (h *BookingHandler) publishPoisoned(msg *message.Message, cause error) {
	reqPoisoned := request.PoisonedQueue{
		TopicTarget: "payment_callback",
		ErrorMsg:    cause.Error(),
		Payload:     msg.Payload,
	}

	jsonPayload, _ := json.Marshal(reqPoisoned)
	if err := h.Publish.Publish("poisoned_queue", message.NewMessage(watermill.NewUUID(), jsonPayload)); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error publish to poison queue: %v", err))
	}
}

func (h *BookingHandler) SetPaymentExpired(ctx context.Context, t *asynq.Task) error {
	var req request.PaymentExpiration
	if err := json.Unmarshal(t.Payload(), &req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error unmarshal payload: %v", err))
		return err
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error validate payload: %v", err))
		return err
	}

	if err := h.Usecase.SetPaymentExpired(ctx, &req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error set payment expired: %v", err))
		return err
	}

	return nil
}
