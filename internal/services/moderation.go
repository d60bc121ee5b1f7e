package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/anonto42/recipebook/backend/internal/repositories"
	"github.com/anonto42/recipebook/backend/internal/storage"
)

// ModerationService takes user reports and verification requests and applies
// admin decisions on them.
type ModerationService struct {
	users         repositories.UserRepository
	reports       repositories.ReportRepository
	verifications repositories.VerificationRepository
	recipes       *RecipeService
	blobs         storage.BlobStore
	logger        *slog.Logger
}

func NewModerationService(
	users repositories.UserRepository,
	reports repositories.ReportRepository,
	verifications repositories.VerificationRepository,
	recipes *RecipeService,
	blobs storage.BlobStore,
	logger *slog.Logger,
) *ModerationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ModerationService{
		users:         users,
		reports:       reports,
		verifications: verifications,
		recipes:       recipes,
		blobs:         blobs,
		logger:        logger,
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// ReportAccount files a report against another user
func (s *ModerationService) ReportAccount(ctx context.Context, viewerID uint, req models.ReportAccountRequest) (*models.Report, error) {
	if err := requireViewer(viewerID); err != nil {
		return nil, err
	}
	if !contains(models.AccountReportReasons, req.Reason) {
		return nil, invalid("unknown report reason %q", req.Reason)
	}
	if req.ReportedUserID == viewerID {
		return nil, invalid("cannot report yourself")
	}
	reporter, err := s.users.GetUserByID(ctx, viewerID)
	if err != nil {
		return nil, storeErr("get reporter", err)
	}
	reported, err := s.users.GetUserByID(ctx, req.ReportedUserID)
	if err != nil {
		return nil, storeErr("get reported user", err)
	}

	report := &models.Report{
		Type:             models.ReportAccount,
		ReporterID:       reporter.ID,
		ReporterEmail:    reporter.Email,
		ReportedUserID:   reported.ID,
		ReportedUserName: reported.Name,
		Reason:           req.Reason,
		Details:          strings.TrimSpace(req.Details),
		Status:           models.ReportPending,
	}
	if err := s.reports.CreateReport(ctx, report); err != nil {
		return nil, storeErr("create report", err)
	}
	return report, nil
}

// ReportPost files a report against a recipe
func (s *ModerationService) ReportPost(ctx context.Context, viewerID uint, req models.ReportPostRequest) (*models.Report, error) {
	if err := requireViewer(viewerID); err != nil {
		return nil, err
	}
	if !contains(models.PostReportReasons, req.Reason) {
		return nil, invalid("unknown report reason %q", req.Reason)
	}
	reporter, err := s.users.GetUserByID(ctx, viewerID)
	if err != nil {
		return nil, storeErr("get reporter", err)
	}
	recipe, err := s.recipes.Get(ctx, req.RecipeID)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		Type:             models.ReportPost,
		ReporterID:       reporter.ID,
		ReporterEmail:    reporter.Email,
		ReportedUserID:   recipe.UserID,
		ReportedUserName: recipe.DisplayName,
		ReportedRecipeID: req.RecipeID,
		Reason:           req.Reason,
		Details:          strings.TrimSpace(req.Details),
		Status:           models.ReportPending,
	}
	if err := s.reports.CreateReport(ctx, report); err != nil {
		return nil, storeErr("create report", err)
	}
	return report, nil
}

// ListReports returns reports filtered by type and status; empty filters match all
func (s *ModerationService) ListReports(ctx context.Context, reportType, status string) ([]models.Report, error) {
	reports, err := s.reports.ListReports(ctx, reportType, status)
	if err != nil {
		return nil, storeErr("list reports", err)
	}
	return reports, nil
}

// BanFromReport bans the account named by an account report and finishes
// every report against that account.
func (s *ModerationService) BanFromReport(ctx context.Context, reportID uint) (int64, error) {
	report, err := s.reports.GetReportByID(ctx, reportID)
	if err != nil {
		return 0, storeErr("get report", err)
	}
	if err := s.users.SetStatus(ctx, report.ReportedUserID, models.StatusBanned); err != nil {
		return 0, storeErr("ban user", err)
	}
	finished, err := s.reports.FinishReportsForUser(ctx, report.ReportedUserID)
	if err != nil {
		return 0, storeErr("finish reports", err)
	}
	s.logger.Info("user banned", "user_id", report.ReportedUserID, "report_id", reportID, "reports_finished", finished)
	return finished, nil
}

// DeleteRecipeFromReport deletes the recipe named by a post report and
// finishes every report against it.
func (s *ModerationService) DeleteRecipeFromReport(ctx context.Context, reportID uint) (int64, error) {
	report, err := s.reports.GetReportByID(ctx, reportID)
	if err != nil {
		return 0, storeErr("get report", err)
	}
	if report.Type != models.ReportPost || report.ReportedRecipeID == "" {
		return 0, invalid("report %d is not about a recipe", reportID)
	}
	if err := s.recipes.remove(ctx, report.ReportedRecipeID); err != nil && !isNotFound(err) {
		return 0, err
	}
	finished, err := s.reports.FinishReportsForRecipe(ctx, report.ReportedRecipeID)
	if err != nil {
		return 0, storeErr("finish reports", err)
	}
	s.logger.Info("recipe removed", "recipe_id", report.ReportedRecipeID, "report_id", reportID, "reports_finished", finished)
	return finished, nil
}

// SubmitVerification uploads both sides of the viewer's ID and files a
// pending request.
func (s *ModerationService) SubmitVerification(ctx context.Context, viewerID uint, req models.CreateVerificationRequest, front, back *Upload) (*models.VerificationRequest, error) {
	if err := requireViewer(viewerID); err != nil {
		return nil, err
	}
	if front == nil || back == nil {
		return nil, invalid("both sides of the ID document are required")
	}
	user, err := s.users.GetUserByID(ctx, viewerID)
	if err != nil {
		return nil, storeErr("get user", err)
	}

	frontURL, err := s.blobs.Upload(ctx, storage.VerificationPath(viewerID, "id_front"), front.Body, front.ContentType)
	if err != nil {
		return nil, storeErr("upload id front", err)
	}
	backURL, err := s.blobs.Upload(ctx, storage.VerificationPath(viewerID, "id_back"), back.Body, back.ContentType)
	if err != nil {
		return nil, storeErr("upload id back", err)
	}

	request := &models.VerificationRequest{
		UserID:      user.ID,
		DisplayName: user.Name,
		FullName:    strings.TrimSpace(req.FullName),
		UserTitle:   strings.TrimSpace(req.UserTitle),
		IDFrontURL:  frontURL,
		IDBackURL:   backURL,
		Status:      models.VerificationPending,
	}
	if err := s.verifications.CreateRequest(ctx, request); err != nil {
		return nil, storeErr("create verification request", err)
	}
	return request, nil
}

func (s *ModerationService) ListVerifications(ctx context.Context, status string) ([]models.VerificationRequest, error) {
	requests, err := s.verifications.ListRequests(ctx, status)
	if err != nil {
		return nil, storeErr("list verification requests", err)
	}
	return requests, nil
}

// ApproveVerification grants the requested title as the user's badge
func (s *ModerationService) ApproveVerification(ctx context.Context, requestID uint) error {
	request, err := s.pendingVerification(ctx, requestID)
	if err != nil {
		return err
	}
	if err := s.users.SetUserTitle(ctx, request.UserID, request.UserTitle); err != nil {
		return storeErr("set user title", err)
	}
	if err := s.verifications.SetStatus(ctx, requestID, models.VerificationApproved); err != nil {
		return storeErr("approve verification", err)
	}
	return nil
}

func (s *ModerationService) RejectVerification(ctx context.Context, requestID uint) error {
	if _, err := s.pendingVerification(ctx, requestID); err != nil {
		return err
	}
	if err := s.verifications.SetStatus(ctx, requestID, models.VerificationRejected); err != nil {
		return storeErr("reject verification", err)
	}
	return nil
}

func (s *ModerationService) pendingVerification(ctx context.Context, requestID uint) (*models.VerificationRequest, error) {
	request, err := s.verifications.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, storeErr("get verification request", err)
	}
	if request.Status != models.VerificationPending {
		return nil, invalid("verification request %d is already %s", requestID, request.Status)
	}
	return request, nil
}
