package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	sentinel := New(CodeEssenceInsufficient, "not enough motes")
	detailed := sentinel.With("required", "5")
	wrapped := fmt.Errorf("spend: %w", detailed)

	if !stderrors.Is(wrapped, sentinel) {
		t.Fatal("expected wrapped error to match sentinel by code")
	}
	if stderrors.Is(wrapped, New(CodeWillpowerInsufficient, "")) {
		t.Fatal("expected different code not to match")
	}
	if sentinel.Metadata != nil {
		t.Fatal("With must not mutate the sentinel")
	}
	if CodeOf(wrapped) != CodeEssenceInsufficient {
		t.Fatalf("CodeOf = %s", CodeOf(wrapped))
	}
	if MetadataOf(wrapped)["required"] != "5" {
		t.Fatalf("metadata = %v", MetadataOf(wrapped))
	}
	if CodeOf(stderrors.New("plain")) != CodeUnknown {
		t.Fatal("expected unknown code for plain errors")
	}
}

func TestWrapUnwrapsCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(CodeInvariantViolation, "apply failed", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
}

func TestTransportCodes(t *testing.T) {
	tests := []struct {
		code Code
		grpc codes.Code
		http int
	}{
		{CodeAttributeInvalidRating, codes.InvalidArgument, http.StatusBadRequest},
		{CodeEssenceInsufficient, codes.FailedPrecondition, http.StatusConflict},
		{CodeWeaponNotFound, codes.NotFound, http.StatusNotFound},
		{CodeEssenceDuplicateCommitment, codes.AlreadyExists, http.StatusConflict},
		{CodeHistoryNothingToUndo, codes.FailedPrecondition, http.StatusConflict},
		{CodeInvariantViolation, codes.Internal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.code.GRPCCode(); got != tt.grpc {
			t.Fatalf("%s grpc = %v, want %v", tt.code, got, tt.grpc)
		}
		if got := tt.code.HTTPStatus(); got != tt.http {
			t.Fatalf("%s http = %d, want %d", tt.code, got, tt.http)
		}
	}
}

func TestToGRPCStatusAttachesDetails(t *testing.T) {
	err := WithMetadata(CodeWeaponUnequipNatural, "natural weapon", map[string]string{"weapon": "Unarmed"})
	st, ok := status.FromError(err.ToGRPCStatus("en-US", "Unarmed cannot be removed."))
	if !ok {
		t.Fatal("expected grpc status")
	}
	if st.Code() != codes.FailedPrecondition {
		t.Fatalf("code = %v", st.Code())
	}
	var info *errdetails.ErrorInfo
	for _, detail := range st.Details() {
		if typed, ok := detail.(*errdetails.ErrorInfo); ok {
			info = typed
		}
	}
	if info == nil || info.Reason != string(CodeWeaponUnequipNatural) || info.Metadata["weapon"] != "Unarmed" {
		t.Fatalf("unexpected error info: %+v", info)
	}
}
