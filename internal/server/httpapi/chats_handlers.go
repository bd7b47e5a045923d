package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cortex-chat/cortex-server/internal/common"
	"github.com/cortex-chat/cortex-server/internal/patch"
	"github.com/cortex-chat/cortex-server/internal/server/models"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/chats"
)

type createChatRequest struct {
	ID               string  `json:"id"`
	EncryptedChatKey string  `json:"encrypted_chat_key"`
	ChatKeyNonce     string  `json:"chat_key_nonce"`
	EncryptedTitle   string  `json:"encrypted_title"`
	TitleNonce       string  `json:"title_nonce"`
	EncryptedChat    string  `json:"encrypted_chat"`
	ChatNonce        string  `json:"chat_nonce"`
	FolderID         *string `json:"folder_id"`
	Pinned           bool    `json:"pinned"`
	Archived         bool    `json:"archived"`
}

// updateChatRequest omits encrypted_chat_key and chat_key_nonce: the wrapped
// per-chat key is fixed at creation together with the content it protects.
type updateChatRequest struct {
	EncryptedTitle patch.Field[string]  `json:"encrypted_title"`
	TitleNonce     patch.Field[string]  `json:"title_nonce"`
	EncryptedChat  patch.Field[string]  `json:"encrypted_chat"`
	ChatNonce      patch.Field[string]  `json:"chat_nonce"`
	FolderID       patch.Field[*string] `json:"folder_id"`
	Pinned         patch.Field[bool]    `json:"pinned"`
	Archived       patch.Field[bool]    `json:"archived"`
}

type chatResponse struct {
	ID               string  `json:"id"`
	EncryptedChatKey string  `json:"encrypted_chat_key"`
	ChatKeyNonce     string  `json:"chat_key_nonce"`
	EncryptedTitle   string  `json:"encrypted_title"`
	TitleNonce       string  `json:"title_nonce"`
	EncryptedChat    string  `json:"encrypted_chat"`
	ChatNonce        string  `json:"chat_nonce"`
	FolderID         *string `json:"folder_id"`
	Pinned           bool    `json:"pinned"`
	Archived         bool    `json:"archived"`
	CreatedAt        int64   `json:"created_at"`
	UpdatedAt        int64   `json:"updated_at"`
}

// chatListItem is the reduced listing shape. Full transcripts can be large,
// so the list omits encrypted_chat and chat_nonce; clients fetch a chat by
// id before decrypting it.
type chatListItem struct {
	ID               string  `json:"id"`
	EncryptedChatKey string  `json:"encrypted_chat_key"`
	ChatKeyNonce     string  `json:"chat_key_nonce"`
	EncryptedTitle   string  `json:"encrypted_title"`
	TitleNonce       string  `json:"title_nonce"`
	FolderID         *string `json:"folder_id"`
	Pinned           bool    `json:"pinned"`
	Archived         bool    `json:"archived"`
	CreatedAt        int64   `json:"created_at"`
	UpdatedAt        int64   `json:"updated_at"`
}

func toChatResponse(ch *models.Chat) chatResponse {
	return chatResponse{
		ID:               ch.ID,
		EncryptedChatKey: ch.EncryptedChatKey,
		ChatKeyNonce:     ch.ChatKeyNonce,
		EncryptedTitle:   ch.EncryptedTitle,
		TitleNonce:       ch.TitleNonce,
		EncryptedChat:    ch.EncryptedChat,
		ChatNonce:        ch.ChatNonce,
		FolderID:         ch.FolderID,
		Pinned:           ch.Pinned,
		Archived:         ch.Archived,
		CreatedAt:        ch.CreatedAt,
		UpdatedAt:        ch.UpdatedAt,
	}
}

func toChatListItem(ch *models.Chat) chatListItem {
	return chatListItem{
		ID:               ch.ID,
		EncryptedChatKey: ch.EncryptedChatKey,
		ChatKeyNonce:     ch.ChatKeyNonce,
		EncryptedTitle:   ch.EncryptedTitle,
		TitleNonce:       ch.TitleNonce,
		FolderID:         ch.FolderID,
		Pinned:           ch.Pinned,
		Archived:         ch.Archived,
		CreatedAt:        ch.CreatedAt,
		UpdatedAt:        ch.UpdatedAt,
	}
}

func (s *Server) listChats(c echo.Context) error {
	user := currentUser(c)

	items, err := s.chats.List(c.Request().Context(), user.ID)
	if err != nil {
		s.logger.Error(c.Request().Context(), "list chats failed", "error", err.Error())
		return httpError(err)
	}

	resp := make([]chatListItem, 0, len(items))
	for _, ch := range items {
		resp = append(resp, toChatListItem(ch))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) getChat(c echo.Context) error {
	user := currentUser(c)

	chat, err := s.chats.Get(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toChatResponse(chat))
}

func (s *Server) createChat(c echo.Context) error {
	user := currentUser(c)

	req := &createChatRequest{}
	if err := c.Bind(req); err != nil {
		return httpError(common.ErrorValidation)
	}

	chat := &models.Chat{
		ID:               req.ID,
		EncryptedChatKey: req.EncryptedChatKey,
		ChatKeyNonce:     req.ChatKeyNonce,
		EncryptedTitle:   req.EncryptedTitle,
		TitleNonce:       req.TitleNonce,
		EncryptedChat:    req.EncryptedChat,
		ChatNonce:        req.ChatNonce,
		FolderID:         req.FolderID,
		Pinned:           req.Pinned,
		Archived:         req.Archived,
	}

	created, err := s.chats.Create(c.Request().Context(), user.ID, chat)
	if err != nil {
		s.logger.Error(c.Request().Context(), "create chat failed", "error", err.Error())
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toChatResponse(created))
}

func (s *Server) updateChat(c echo.Context) error {
	user := currentUser(c)

	req := &updateChatRequest{}
	if err := c.Bind(req); err != nil {
		return httpError(common.ErrorValidation)
	}

	params := chats.UpdateParams{
		EncryptedTitle: req.EncryptedTitle,
		TitleNonce:     req.TitleNonce,
		EncryptedChat:  req.EncryptedChat,
		ChatNonce:      req.ChatNonce,
		FolderID:       req.FolderID,
		Pinned:         req.Pinned,
		Archived:       req.Archived,
	}

	chat, err := s.chats.Update(c.Request().Context(), user.ID, c.Param("id"), params)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toChatResponse(chat))
}

func (s *Server) deleteChat(c echo.Context) error {
	user := currentUser(c)

	if err := s.chats.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
