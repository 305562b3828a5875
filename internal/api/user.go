package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"event-scan-api/internal/service"
)

// lookupFromQuery 从 id / email / badge_code 查询参数构造用户查询条件
func lookupFromQuery(c *gin.Context) (service.UserLookup, error) {
	var lookup service.UserLookup
	if raw, ok := c.GetQuery("id"); ok && raw != "" {
		id, err := service.ParseUserID(raw)
		if err != nil {
			return lookup, err
		}
		lookup.ID = &id
	}
	lookup.Email = c.Query("email")
	lookup.BadgeCode = c.Query("badge_code")
	return lookup, nil
}

// GetUsers 获取全部用户及刷卡记录
func (h *Handler) GetUsers(c *gin.Context) {
	users, err := h.services.User.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser 按 id / email / badge_code 获取单个用户
func (h *Handler) GetUser(c *gin.Context) {
	lookup, err := lookupFromQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.services.User.Find(c.Request.Context(), lookup)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser 更新用户资料，只接受 name / email / phone / badge_code
func (h *Handler) UpdateUser(c *gin.Context) {
	lookup, err := lookupFromQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	update, msg := parseUserUpdate(c.Request.Body)
	if msg != "" {
		badRequest(c, msg)
		return
	}

	user, err := h.services.User.Update(c.Request.Context(), lookup, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// parseUserUpdate 解析更新请求体；phone 为 null 表示清空，其他字段必须是字符串。
// 返回非空 msg 表示请求体不合法。
func parseUserUpdate(body io.Reader) (service.UserUpdate, string) {
	var update service.UserUpdate
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return update, ""
		}
		return update, "Request body must be a JSON object"
	}

	str := func(key string) (*string, string) {
		raw, ok := fields[key]
		if !ok {
			return nil, ""
		}
		var v *string
		if err := json.Unmarshal(raw, &v); err != nil || v == nil {
			return nil, key + " must be a string"
		}
		return v, ""
	}

	var msg string
	if update.Name, msg = str("name"); msg != "" {
		return update, msg
	}
	if update.Email, msg = str("email"); msg != "" {
		return update, msg
	}
	if update.BadgeCode, msg = str("badge_code"); msg != "" {
		return update, msg
	}
	if raw, ok := fields["phone"]; ok {
		var phone *string
		if err := json.Unmarshal(raw, &phone); err != nil {
			return update, "phone must be a string or null"
		}
		if phone == nil {
			update.ClearPhone = true
		} else {
			update.Phone = phone
		}
	}
	return update, ""
}
