package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"grantsproject/models"
	repository "grantsproject/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
)

// CascadeFailure records one delete that failed during a cascading grant
// delete, addressed by the document path that could not be removed.
type CascadeFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// CascadeResult reports what a cascading delete actually did. When Failures
// is non-empty the grant document itself was left in place so the remaining
// descendants stay reachable.
type CascadeResult struct {
	GrantID  string           `json:"grant_id"`
	Deleted  int64            `json:"deleted"`
	Failures []CascadeFailure `json:"failures,omitempty"`
}

func (r *CascadeResult) Complete() bool {
	return len(r.Failures) == 0
}

type GrantService interface {
	CreateGrant(ctx context.Context, grant *models.Grant) (*models.Grant, error)
	GetGrantByID(ctx context.Context, id string) (*models.Grant, error)
	GetAllGrants(ctx context.Context) ([]models.Grant, error)
	UpdateGrant(ctx context.Context, id string, grant *models.Grant) (*models.Grant, error)
	DeleteGrant(ctx context.Context, id string) (*CascadeResult, error)
	// File attachment methods
	UploadAttachment(ctx context.Context, grantID string, filename string, fileData io.Reader, updatedBy string, contentType string) (*models.Attachment, error)
	DownloadAttachment(ctx context.Context, fileID primitive.ObjectID) (*gridfs.DownloadStream, error)
	DeleteAttachment(ctx context.Context, grantID string, fileID primitive.ObjectID, updatedBy string) error
}

type grantService struct {
	grants        repository.GrantRepository
	pledges       repository.PledgeRepository
	gifts         repository.GiftRepository
	addresses     repository.AddressRepository
	tracking      repository.TrackingRepository
	calendar      repository.CalendarRepository
	transactional bool
}

// NewGrantService wires the grant service. When transactional is true (the
// cluster is a replica set) cascading deletes run inside a Mongo transaction;
// otherwise they run best-effort and report partial failures.
func NewGrantService(
	grants repository.GrantRepository,
	pledges repository.PledgeRepository,
	gifts repository.GiftRepository,
	addresses repository.AddressRepository,
	tracking repository.TrackingRepository,
	calendar repository.CalendarRepository,
	transactional bool,
) GrantService {
	return &grantService{
		grants:        grants,
		pledges:       pledges,
		gifts:         gifts,
		addresses:     addresses,
		tracking:      tracking,
		calendar:      calendar,
		transactional: transactional,
	}
}

func (s *grantService) CreateGrant(ctx context.Context, grant *models.Grant) (*models.Grant, error) {
	id, err := s.grants.NextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to assign grant id: %v", err)
	}
	grant.ID = id

	if grant.Status == "" {
		grant.Status = models.StatusPending
	}
	if grant.Attachments == nil {
		grant.Attachments = []models.Attachment{}
	}

	now := time.Now()
	grant.Metadata.CreatedAt = now
	grant.Metadata.UpdatedAt = now

	if err := s.grants.Create(ctx, grant); err != nil {
		return nil, err
	}

	return grant, nil
}

func (s *grantService) GetGrantByID(ctx context.Context, id string) (*models.Grant, error) {
	return s.grants.GetByID(ctx, id)
}

func (s *grantService) GetAllGrants(ctx context.Context) ([]models.Grant, error) {
	return s.grants.GetAll(ctx)
}

// UpdateGrant applies merge semantics: only fields the caller provided
// overwrite the stored document.
func (s *grantService) UpdateGrant(ctx context.Context, id string, grant *models.Grant) (*models.Grant, error) {
	fields := bson.M{}
	if grant.Title != "" {
		fields["title"] = grant.Title
	}
	if grant.Organization != "" {
		fields["organization"] = grant.Organization
	}
	if grant.Status != "" {
		fields["status"] = grant.Status
	}
	if grant.FiscalYear != "" {
		fields["fiscal_year"] = grant.FiscalYear
	}
	if grant.ApplicationDate != "" {
		fields["application_date"] = grant.ApplicationDate
	}
	if grant.AnticipatedNotificationDate != "" {
		fields["anticipated_notification_date"] = grant.AnticipatedNotificationDate
	}
	if grant.ReportDeadline != "" {
		fields["report_deadline"] = grant.ReportDeadline
	}
	if grant.DateAwarded != "" {
		fields["date_awarded"] = grant.DateAwarded
	}
	if grant.ReportSubmitted != "" {
		fields["report_submitted"] = grant.ReportSubmitted
	}
	fields["metadata.updated_by"] = grant.Metadata.UpdatedBy

	if err := s.grants.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	return s.grants.GetByID(ctx, id)
}

// DeleteGrant removes a grant and every descendant document. Order: pledges,
// gifts, addresses, tracking tasks then their sections, calendar events,
// attachment files, and the grant document last so a partial failure never
// strands unreachable descendants.
func (s *grantService) DeleteGrant(ctx context.Context, id string) (*CascadeResult, error) {
	grant, err := s.grants.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("grant not found: %v", err)
	}

	if s.transactional {
		return s.deleteGrantTx(ctx, grant)
	}
	return s.deleteGrantBestEffort(ctx, grant), nil
}

// deleteGrantBestEffort attempts every delete and collects failures rather
// than stopping at the first one.
func (s *grantService) deleteGrantBestEffort(ctx context.Context, grant *models.Grant) *CascadeResult {
	result := &CascadeResult{GrantID: grant.ID}

	fail := func(path string, err error) {
		result.Failures = append(result.Failures, CascadeFailure{Path: path, Error: err.Error()})
	}

	if n, err := s.pledges.DeleteByGrant(ctx, grant.ID); err != nil {
		fail(fmt.Sprintf("grants/%s/pledges", grant.ID), err)
	} else {
		result.Deleted += n
	}

	if n, err := s.gifts.DeleteByGrant(ctx, grant.ID); err != nil {
		fail(fmt.Sprintf("grants/%s/gifts", grant.ID), err)
	} else {
		result.Deleted += n
	}

	if n, err := s.addresses.DeleteByGrant(ctx, grant.ID); err != nil {
		fail(fmt.Sprintf("grants/%s/addresses", grant.ID), err)
	} else {
		result.Deleted += n
	}

	sections, err := s.tracking.ListSectionsByGrant(ctx, grant.ID)
	if err != nil {
		fail(fmt.Sprintf("grants/%s/trackingSections", grant.ID), err)
	}
	for _, section := range sections {
		n, err := s.tracking.DeleteTasksBySection(ctx, section.ID)
		if err != nil {
			fail(fmt.Sprintf("grants/%s/trackingSections/%s/trackingTasks", grant.ID, section.ID), err)
			// keep the section so its remaining tasks stay reachable
			continue
		}
		result.Deleted += n
		if err := s.tracking.DeleteSection(ctx, section.ID); err != nil {
			fail(fmt.Sprintf("grants/%s/trackingSections/%s", grant.ID, section.ID), err)
		} else {
			result.Deleted++
		}
	}

	if n, err := s.calendar.DeleteByGrant(ctx, grant.ID); err != nil {
		fail(fmt.Sprintf("grants/%s/Calendar", grant.ID), err)
	} else {
		result.Deleted += n
	}

	for _, att := range grant.Attachments {
		if err := s.grants.DeleteFile(ctx, att.FileID); err != nil {
			fail(fmt.Sprintf("grants/%s/attachments/%s", grant.ID, att.FileID.Hex()), err)
		} else {
			result.Deleted++
		}
	}

	// The grant document goes last, and only if everything beneath it is
	// gone; otherwise the survivors would be orphaned under a deleted parent.
	if result.Complete() {
		if err := s.grants.Delete(ctx, grant.ID); err != nil {
			fail(fmt.Sprintf("grants/%s", grant.ID), err)
		} else {
			result.Deleted++
		}
	} else {
		fail(fmt.Sprintf("grants/%s", grant.ID),
			fmt.Errorf("skipped: %d descendant delete(s) failed", len(result.Failures)))
	}

	return result
}

// deleteGrantTx runs the same sequence inside a Mongo transaction and aborts
// on the first failure, so the delete is all-or-nothing. GridFS files are
// removed after commit; GridFS writes are not transactional.
func (s *grantService) deleteGrantTx(ctx context.Context, grant *models.Grant) (*CascadeResult, error) {
	transactionCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := s.grants.GetClient()

	session, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %v", err)
	}
	defer session.EndSession(transactionCtx)

	sessionCtx := mongo.NewSessionContext(transactionCtx, session)

	if err := session.StartTransaction(); err != nil {
		return nil, fmt.Errorf("failed to start transaction: %v", err)
	}

	result := &CascadeResult{GrantID: grant.ID}

	abort := func(step string, err error) error {
		session.AbortTransaction(sessionCtx)
		return fmt.Errorf("cascade aborted at %s: %v", step, err)
	}

	n, err := s.pledges.DeleteByGrant(sessionCtx, grant.ID)
	if err != nil {
		return nil, abort("pledges", err)
	}
	result.Deleted += n

	n, err = s.gifts.DeleteByGrant(sessionCtx, grant.ID)
	if err != nil {
		return nil, abort("gifts", err)
	}
	result.Deleted += n

	n, err = s.addresses.DeleteByGrant(sessionCtx, grant.ID)
	if err != nil {
		return nil, abort("addresses", err)
	}
	result.Deleted += n

	sections, err := s.tracking.ListSectionsByGrant(sessionCtx, grant.ID)
	if err != nil {
		return nil, abort("tracking sections", err)
	}
	for _, section := range sections {
		n, err := s.tracking.DeleteTasksBySection(sessionCtx, section.ID)
		if err != nil {
			return nil, abort("tracking tasks", err)
		}
		result.Deleted += n

		if err := s.tracking.DeleteSection(sessionCtx, section.ID); err != nil {
			return nil, abort("tracking section", err)
		}
		result.Deleted++
	}

	n, err = s.calendar.DeleteByGrant(sessionCtx, grant.ID)
	if err != nil {
		return nil, abort("calendar events", err)
	}
	result.Deleted += n

	if err := s.grants.Delete(sessionCtx, grant.ID); err != nil {
		return nil, abort("grant document", err)
	}
	result.Deleted++

	if err := session.CommitTransaction(sessionCtx); err != nil {
		session.AbortTransaction(sessionCtx)
		return nil, fmt.Errorf("failed to commit cascade delete: %v", err)
	}

	for _, att := range grant.Attachments {
		if err := s.grants.DeleteFile(transactionCtx, att.FileID); err != nil {
			result.Failures = append(result.Failures, CascadeFailure{
				Path:  fmt.Sprintf("grants/%s/attachments/%s", grant.ID, att.FileID.Hex()),
				Error: err.Error(),
			})
		} else {
			result.Deleted++
		}
	}

	return result, nil
}

func (s *grantService) UploadAttachment(ctx context.Context, grantID string, filename string, fileData io.Reader, updatedBy string, contentType string) (*models.Attachment, error) {
	if _, err := s.grants.GetByID(ctx, grantID); err != nil {
		return nil, fmt.Errorf("grant not found: %v", err)
	}

	fileID, err := s.grants.UploadFile(ctx, filename, fileData, updatedBy, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %v", err)
	}

	attachment := models.Attachment{
		FileID:   fileID,
		Filename: filename,
	}

	if err := s.grants.AddAttachment(ctx, grantID, attachment, updatedBy); err != nil {
		// Remove the uploaded file so a failed attach leaves nothing behind.
		if cleanupErr := s.grants.DeleteFile(context.Background(), fileID); cleanupErr != nil {
			fmt.Printf("Failed to cleanup uploaded file %s: %v\n", fileID.Hex(), cleanupErr)
		}
		return nil, fmt.Errorf("failed to add attachment to grant: %v", err)
	}

	return &attachment, nil
}

func (s *grantService) DownloadAttachment(ctx context.Context, fileID primitive.ObjectID) (*gridfs.DownloadStream, error) {
	return s.grants.DownloadFile(ctx, fileID)
}

func (s *grantService) DeleteAttachment(ctx context.Context, grantID string, fileID primitive.ObjectID, updatedBy string) error {
	grant, err := s.grants.GetByID(ctx, grantID)
	if err != nil {
		return fmt.Errorf("grant not found: %v", err)
	}

	var attachmentFilename string
	var attachmentExists bool
	for _, attachment := range grant.Attachments {
		if attachment.FileID == fileID {
			attachmentExists = true
			attachmentFilename = attachment.Filename
			break
		}
	}

	if !attachmentExists {
		return fmt.Errorf("attachment with file_id %s not found in grant %s", fileID.Hex(), grantID)
	}

	if err := s.grants.RemoveAttachment(ctx, grantID, fileID, updatedBy); err != nil {
		return fmt.Errorf("failed to remove attachment from grant: %v", err)
	}

	if err := s.grants.DeleteFile(ctx, fileID); err != nil {
		// Put the reference back so the file stays reachable.
		attachment := models.Attachment{FileID: fileID, Filename: attachmentFilename}
		if rollbackErr := s.grants.AddAttachment(ctx, grantID, attachment, updatedBy); rollbackErr != nil {
			return fmt.Errorf("failed to delete file and rollback failed: %v (original error: %v)", rollbackErr, err)
		}
		return fmt.Errorf("failed to delete file from GridFS: %v", err)
	}

	return nil
}
