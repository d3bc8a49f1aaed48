package handlers

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"contracthub/internal/domain"
	"contracthub/internal/dto"
	"contracthub/internal/helper/utils"
	"contracthub/internal/interfaces"
	"contracthub/internal/services"
	"contracthub/internal/storage"
	"contracthub/internal/textextract"

	"github.com/gofiber/fiber/v2"
)

type ContractHandler struct {
	svc      services.ContractService
	notifSvc services.NotificationService
	files    interfaces.FileStore
}

func NewContractHandler(svc services.ContractService, notifSvc services.NotificationService, files interfaces.FileStore) *ContractHandler {
	return &ContractHandler{svc: svc, notifSvc: notifSvc, files: files}
}

func (h *ContractHandler) SetupRoutes(app *fiber.App) {
	app.Get("/dashboard", h.Dashboard)
	app.Get("/reports", h.Reports)

	contracts := app.Group("/contracts")
	contracts.Post("/add", h.Add)
	contracts.Get("/view/:id", h.View)
	contracts.Post("/edit/:id", h.Edit)
	contracts.Post("/delete/:id", h.Delete)
	contracts.Get("/download/:fileName", h.Download)
}

func (h *ContractHandler) Dashboard(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	// stats always reflect the unfiltered universe
	stats, err := h.svc.StatsForUser(user)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	filter := filterFromQuery(ctx)

	var contracts []domain.Contract
	if filter.Empty() {
		contracts, err = h.svc.ContractsForUser(user)
	} else {
		contracts, err = h.svc.FilterContracts(user, filter)
	}
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	types, err := h.svc.ContractTypes(user)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	unread, _ := h.notifSvc.UnreadCount(user)

	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"stats":          stats,
		"contracts":      contracts,
		"contract_types": types,
		"has_filters":    !filter.Empty(),
		"unread_count":   unread,
	})
}

func (h *ContractHandler) Reports(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	reports, err := h.svc.Reports(user)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, reports)
}

func (h *ContractHandler) Add(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.ContractRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	file, err := readUpload(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "failed to read uploaded file")
	}

	contract, err := h.svc.CreateContract(user, requestBody, file)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, contract)
}

func (h *ContractHandler) View(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid contract id")
	}

	contract, err := h.svc.GetContract(user, uint(id))
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}

	resp := fiber.Map{"contract": contract}
	if contract.FileName != "" {
		resp["is_pdf"] = textextract.IsPDF(contract.FileName)
		resp["is_image"] = textextract.IsImage(contract.FileName)

		if textextract.IsPDF(contract.FileName) {
			if b, err := h.files.Load(contract.FileName); err == nil {
				resp["extracted_text"] = textextract.ExtractText(contract.FileName, b)
			} else {
				resp["extracted_text"] = "[Could not extract text: " + err.Error() + "]"
			}
		}
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *ContractHandler) Edit(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid contract id")
	}

	var requestBody dto.ContractRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	file, err := readUpload(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "failed to read uploaded file")
	}

	contract, err := h.svc.UpdateContract(user, uint(id), requestBody, file)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, contract)
}

func (h *ContractHandler) Delete(ctx *fiber.Ctx) error {
	user, ok := currentUser(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid contract id")
	}

	if err := h.svc.DeleteContract(user, uint(id)); err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Contract deleted successfully")
}

func (h *ContractHandler) Download(ctx *fiber.Ctx) error {
	if _, ok := currentUser(ctx); !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	fileName := ctx.Params("fileName")
	path, err := h.files.Path(fileName)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}

	ctx.Set(fiber.HeaderContentType, storage.ContentTypeFor(fileName))
	return ctx.Download(path, filepath.Base(fileName))
}

func filterFromQuery(ctx *fiber.Ctx) domain.ContractFilter {
	filter := domain.ContractFilter{
		Keyword:      strings.TrimSpace(ctx.Query("keyword")),
		Status:       domain.ParseContractStatus(ctx.Query("status")),
		Party:        domain.ParseParty(ctx.Query("party")),
		ContractType: strings.TrimSpace(ctx.Query("contractType")),
	}
	if d, err := time.Parse("2006-01-02", ctx.Query("fromDate")); err == nil {
		filter.FromDate = &d
	}
	if d, err := time.Parse("2006-01-02", ctx.Query("toDate")); err == nil {
		filter.ToDate = &d
	}
	return filter
}

func readUpload(ctx *fiber.Ctx) (*services.Upload, error) {
	fh, err := ctx.FormFile("file")
	if err != nil || fh == nil {
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &services.Upload{
		Bytes:       b,
		ContentType: fh.Header.Get("Content-Type"),
		Name:        fh.Filename,
	}, nil
}
