package errors

import "testing"

func TestValidateEntryPointID(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"src/cli.ts::main", false},
		{"a::b::c", false},
		{"", true},
		{"main", true},
		{"::main", true},
		{"src/cli.ts::", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateEntryPointID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEntryPointID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("wrong code: %v", err)
			}
		})
	}
}

func TestValidateUploadFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"structure", "structure.json", false},
		{"upper ext", "calls.JSON", false},
		{"prefixed", "myrepo-arch.json", false},
		{"empty", "", true},
		{"any extension", "calls-export.txt", false},
		{"no extension", "README", false},
		{"dot", "..", true},
		{"path", "../calls.json", true},
		{"backslash", "dir\\calls.json", true},
		{"control", "calls\n.json", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateUploadFilename(tt.input); (err != nil) != tt.wantErr {
				t.Errorf("ValidateUploadFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidView,
		ErrCodeInvalidDataset,
		ErrCodeInvalidResponse,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeRateLimited,
		ErrCodeConflict,
		ErrCodeUnauthorized,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
