package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kycintake/internal/kyc"
	"kycintake/internal/model"
	"kycintake/internal/service"
)

// SubmitBusiness accepts a business KYC submission.
//
// @Summary  Submit business KYC
// @Tags     kyc
// @Accept   multipart/form-data
// @Produce  json
// @Param    business_name          formData string true  "Registered business name"
// @Param    business_type          formData string true  "sole_proprietorship, llc or llp"
// @Param    owners_json            formData string true  "JSON array of owner objects with full_name"
// @Param    company_cr12_date      formData string false "CR12 issue date (YYYY-MM-DD)"
// @Param    owners_files           formData file   false "Owner files named owner{N}_{document_key}.{ext}"
// @Param    owners_files_manifest  formData string false "JSON array of {filename, owner_index, document_key}"
// @Success  201 {object} service.BusinessResult
// @Failure  400 {object} errorPayload
// @Failure  422 {object} errorPayload
// @Failure  502 {object} errorPayload
// @Router   /kyc/business [post]
func SubmitBusiness(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FORM", "multipart/form-data body is required")
		}

		in := kyc.SubmissionInput{
			BusinessName:  formValue(form, "business_name"),
			BusinessType:  formValue(form, "business_type"),
			OwnersJSON:    []byte(formValue(form, "owners_json")),
			CR12IssuedOn:  formValue(form, "company_cr12_date"),
			BusinessFiles: make(map[model.BusinessDocumentKey]*kyc.RawFile),
		}
		if in.BusinessName == "" {
			return writeError(c, fiber.StatusBadRequest, "FIELD_REQUIRED", "business_name is required")
		}

		for _, key := range model.BusinessDocumentKeys {
			fhs := form.File[string(key)]
			if len(fhs) == 0 {
				continue
			}
			f, err := readFile(fhs[0])
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot read uploaded file")
			}
			in.BusinessFiles[key] = &f
		}

		if in.OwnerFiles, err = readFiles(form.File["owners_files"]); err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot read uploaded file")
		}

		if raw := formValue(form, "owners_files_manifest"); raw != "" {
			in.ManifestJSON = []byte(raw)
		}

		res, err := svc.SubmitBusiness(c.UserContext(), in)
		if err != nil {
			return writeKYCError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// SubmitIndividual accepts an individual applicant's KYC submission.
//
// @Summary  Submit individual KYC
// @Tags     kyc
// @Accept   multipart/form-data
// @Produce  json
// @Param    full_name             formData string true  "Applicant name"
// @Param    telephone_number      formData string true  "Telephone number"
// @Param    physical_address      formData string true  "Physical address"
// @Param    email_address         formData string true  "Email address"
// @Param    level_of_education    formData string true  "Level of education"
// @Param    social_media_handles  formData string false "Comma-separated handles"
// @Success  201 {object} service.IndividualResult
// @Failure  400 {object} errorPayload
// @Failure  422 {object} errorPayload
// @Failure  502 {object} errorPayload
// @Router   /kyc/individual [post]
func SubmitIndividual(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FORM", "multipart/form-data body is required")
		}

		in := kyc.IndividualInput{
			FullName:           formValue(form, "full_name"),
			TelephoneNumber:    formValue(form, "telephone_number"),
			PhysicalAddress:    formValue(form, "physical_address"),
			EmailAddress:       formValue(form, "email_address"),
			LevelOfEducation:   formValue(form, "level_of_education"),
			SocialMediaHandles: formValue(form, "social_media_handles"),
			Files:              make(map[string][]kyc.RawFile),
		}
		for _, key := range kyc.IndividualDocuments {
			files, err := readFiles(form.File[key])
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot read uploaded file")
			}
			if len(files) > 0 {
				in.Files[key] = files
			}
		}

		res, err := svc.SubmitIndividual(c.UserContext(), in)
		if err != nil {
			return writeKYCError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// ListSubmissions lists stored submissions with limit & offset.
//
// @Summary  List submissions
// @Tags     kyc
// @Produce  json
// @Param    kind    query string false "business or individual"
// @Param    limit   query int    false "Page size" default(10)
// @Param    offset  query int    false "Offset"    default(0)
// @Success  200 {object} service.SubmissionListResult
// @Failure  400 {object} errorPayload
// @Router   /kyc/submissions [get]
func ListSubmissions(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), c.Query("kind"), limit, offset)
		if err != nil {
			if errors.Is(err, service.ErrInvalidSubmissionKind) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_KIND", err.Error())
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// GetSubmission returns a stored submission by ID.
//
// @Summary  Get submission
// @Tags     kyc
// @Produce  json
// @Param    id  path string true "Submission ID"
// @Success  200 {object} model.StoredSubmission
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /kyc/submissions/{id} [get]
func GetSubmission(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		sub, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "submission not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(sub)
	}
}
