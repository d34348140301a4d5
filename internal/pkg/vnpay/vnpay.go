package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"appointment-service/config"
)

// TransactionStatusSuccess is the gateway code for a settled payment.
const TransactionStatusSuccess = "00"

const secureHashParam = "vnp_SecureHash"

// Client builds signed redirect URLs for the VNPAY gateway and verifies the
// signature of its callbacks. Pure computation, no network I/O.
type Client struct {
	cfg *config.VNPayConfig
	now func() time.Time
}

func NewClient(cfg *config.VNPayConfig) *Client {
	return &Client{
		cfg: cfg,
		now: time.Now,
	}
}

type PaymentURLRequest struct {
	OrderID   string
	Amount    float64
	OrderInfo string
	ReturnURL string
	IPAddr    string
}

type PaymentURLResult struct {
	PaymentURL string
	TxnRef     string
	Amount     float64
	OrderInfo  string
}

type VerifyResult struct {
	IsValid           bool
	TxnRef            string
	TransactionStatus string
	ResponseCode      string
	OrderInfo         string
	Amount            float64
}

// BuildPaymentURL canonicalizes the gateway parameter set, signs it with
// HMAC-SHA512 and returns the full redirect URL. The amount is transmitted
// as an integer scaled by 100, per the gateway contract.
func (c *Client) BuildPaymentURL(req PaymentURLRequest) PaymentURLResult {
	now := c.now()
	txnRef := fmt.Sprintf("%s_%s", req.OrderID, now.Format("20060102150405"))

	returnURL := req.ReturnURL
	if returnURL == "" {
		returnURL = c.cfg.ReturnURL
	}

	ipAddr := req.IPAddr
	if ipAddr == "" {
		ipAddr = "127.0.0.1"
	}

	params := url.Values{}
	params.Set("vnp_Version", c.cfg.Version)
	params.Set("vnp_Command", "pay")
	params.Set("vnp_TmnCode", c.cfg.TmnCode)
	params.Set("vnp_Amount", strconv.FormatInt(int64(math.Round(req.Amount*100)), 10))
	params.Set("vnp_CurrCode", "VND")
	params.Set("vnp_TxnRef", txnRef)
	params.Set("vnp_OrderInfo", req.OrderInfo)
	params.Set("vnp_OrderType", "other")
	params.Set("vnp_Locale", "vn")
	params.Set("vnp_ReturnUrl", returnURL)
	params.Set("vnp_IpAddr", ipAddr)
	params.Set("vnp_CreateDate", now.Format("20060102150405"))

	// Encode sorts keys lexicographically, which is exactly the gateway's
	// canonical form.
	queryString := params.Encode()
	secureHash := c.sign(queryString)

	return PaymentURLResult{
		PaymentURL: fmt.Sprintf("%s?%s&%s=%s", c.cfg.PaymentURL, queryString, secureHashParam, secureHash),
		TxnRef:     txnRef,
		Amount:     req.Amount,
		OrderInfo:  req.OrderInfo,
	}
}

// VerifyCallback strips the hash field, re-canonicalizes the remaining
// parameters and compares the recomputed HMAC in constant time. A mismatch
// means the payload must not be processed any further.
func (c *Client) VerifyCallback(callbackParams map[string]string) VerifyResult {
	suppliedHash := callbackParams[secureHashParam]

	params := url.Values{}
	for key, value := range callbackParams {
		if key == secureHashParam {
			continue
		}
		params.Set(key, value)
	}

	expectedHash := c.sign(params.Encode())
	isValid := hmac.Equal([]byte(expectedHash), []byte(suppliedHash))

	amount, _ := strconv.ParseFloat(callbackParams["vnp_Amount"], 64)

	return VerifyResult{
		IsValid:           isValid,
		TxnRef:            callbackParams["vnp_TxnRef"],
		TransactionStatus: callbackParams["vnp_TransactionStatus"],
		ResponseCode:      callbackParams["vnp_ResponseCode"],
		OrderInfo:         callbackParams["vnp_OrderInfo"],
		Amount:            amount / 100,
	}
}

func (c *Client) sign(data string) string {
	mac := hmac.New(sha512.New, []byte(c.cfg.SecretKey))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
