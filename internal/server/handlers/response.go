package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

const (
	msgServerError    = "Server error"
	msgInvalidPayload = "invalid request body"
	maxFormMemory     = 8 << 20
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func respondOK(c *gin.Context, message string, data any) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(http.StatusOK, Envelope{Status: true, Message: message, Data: data})
}

// respondNotFound answers 200 with status false, which clients treat as "no data".
func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Status: false, Message: message, Data: gin.H{}})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Envelope{Status: false, Message: message, Data: gin.H{}})
}

func respondServerError(c *gin.Context, logger *zap.Logger, op string, err error) {
	logger.Error(op+" failed", zap.Error(err), zap.String("path", c.FullPath()))
	c.JSON(http.StatusInternalServerError, Envelope{Status: false, Message: msgServerError, Data: gin.H{}})
}

// decodePayload reads a JSON object or a form post into a generic map.
// Numbers are kept as json.Number. An empty body yields an empty map.
func decodePayload(c *gin.Context) (map[string]any, error) {
	payload := map[string]any{}

	switch c.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, err
		}
		for key, values := range c.Request.PostForm {
			if len(values) > 0 {
				payload[key] = values[0]
			}
		}
		return payload, nil
	}

	if c.Request.Body == nil {
		return payload, nil
	}

	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return payload, nil
		}
		return nil, err
	}
	return payload, nil
}

// lookupParam returns a query parameter, falling back to the same key in the body.
func lookupParam(c *gin.Context, key string) (string, error) {
	if value := c.Query(key); value != "" {
		return value, nil
	}
	payload, err := decodePayload(c)
	if err != nil {
		return "", err
	}
	return stringField(payload, key), nil
}
