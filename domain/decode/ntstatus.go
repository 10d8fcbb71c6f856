package decode

import (
	"fmt"

	"github.com/xenontools/ppccalc/domain/numeric"
)

// NTSTATUS severity values, from the top two bits of the code.
const (
	SeveritySuccess       = 0
	SeverityInformational = 1
	SeverityWarning       = 2
	SeverityError         = 3
)

var severityNames = [4]string{"success", "informational", "warning", "error"}

// statusEntry pairs a well-known code's symbolic name with a description.
type statusEntry struct {
	name        string
	description string
}

// knownStatuses maps well-known 32-bit codes to names. Severity is never
// looked up here; it is structural. Read-only after init.
var knownStatuses = map[uint32]statusEntry{
	0x00000000: {"STATUS_SUCCESS", "The operation completed successfully"},
	0x00000103: {"STATUS_PENDING", "The operation is still in progress"},
	0x00000104: {"STATUS_REPARSE", "A reparse should be performed to complete the operation"},
	0x00000105: {"STATUS_MORE_ENTRIES", "More entries are available than the buffer could hold"},
	0x00000120: {"STATUS_OPLOCK_BREAK_IN_PROGRESS", "An opportunistic lock break is in progress"},
	0x40000000: {"STATUS_OBJECT_NAME_EXISTS", "The object name already exists; the existing object was used"},
	0x80000005: {"STATUS_BUFFER_OVERFLOW", "The data was too large for the buffer; it was truncated"},
	0x80000006: {"STATUS_NO_MORE_FILES", "No more files match the file specification"},
	0x8000001A: {"STATUS_NO_MORE_ENTRIES", "No more entries are available from the enumeration"},
	0xC0000001: {"STATUS_UNSUCCESSFUL", "The requested operation was unsuccessful"},
	0xC0000002: {"STATUS_NOT_IMPLEMENTED", "The requested operation is not implemented"},
	0xC0000005: {"STATUS_ACCESS_VIOLATION", "The instruction referenced memory it could not access"},
	0xC0000008: {"STATUS_INVALID_HANDLE", "An invalid handle was specified"},
	0xC000000D: {"STATUS_INVALID_PARAMETER", "An invalid parameter was passed"},
	0xC0000011: {"STATUS_END_OF_FILE", "The end-of-file marker has been reached"},
	0xC0000017: {"STATUS_NO_MEMORY", "Not enough memory is available to complete the operation"},
	0xC0000022: {"STATUS_ACCESS_DENIED", "A process has requested access it has not been granted"},
	0xC0000023: {"STATUS_BUFFER_TOO_SMALL", "The buffer is too small to contain the entry"},
	0xC0000034: {"STATUS_OBJECT_NAME_NOT_FOUND", "The object name was not found"},
	0xC0000035: {"STATUS_OBJECT_NAME_COLLISION", "The object name already exists"},
	0xC000003A: {"STATUS_OBJECT_PATH_NOT_FOUND", "The object path component was not found"},
	0xC00000BB: {"STATUS_NOT_SUPPORTED", "The request is not supported"},
	0xC00000E5: {"STATUS_INTERNAL_ERROR", "An internal error occurred"},
	0xC0000185: {"STATUS_IO_DEVICE_ERROR", "The I/O device reported an error"},
	0xC0000225: {"STATUS_NOT_FOUND", "The object was not found"},
}

// StatusInfo is a fully decomposed NTSTATUS code. Severity comes from
// bits 31:30, the customer flag from bit 29, the facility from bits
// 26:16, and the code from bits 15:0. Name and Description come from the
// well-known table when the full 32-bit value is present there.
type StatusInfo struct {
	Status       string `json:"status"`
	Severity     string `json:"severity"`
	SeverityCode int    `json:"severity_code"`
	Customer     bool   `json:"customer"`
	Facility     string `json:"facility"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Known        bool   `json:"known"`
}

// NTStatusDecode decomposes a 32-bit NTSTATUS value.
func NTStatusDecode(status string) (StatusInfo, error) {
	v, err := numeric.ParseLiteral(status, numeric.Width32)
	if err != nil {
		return StatusInfo{}, err
	}
	code := uint32(v.Unsigned())

	severity := int(code >> 30)
	info := StatusInfo{
		Status:       v.Hex(),
		Severity:     severityNames[severity],
		SeverityCode: severity,
		Customer:     code&(1<<29) != 0,
		Facility:     fmt.Sprintf("0x%03X", (code>>16)&0x7FF),
		Code:         fmt.Sprintf("0x%04X", code&0xFFFF),
	}

	if entry, ok := knownStatuses[code]; ok {
		info.Name = entry.name
		info.Description = entry.description
		info.Known = true
	} else {
		info.Name = "UNKNOWN"
		info.Description = "Unknown status"
	}
	return info, nil
}

// NTStatusIsError reports whether the status carries error severity.
func NTStatusIsError(status string) (bool, error) {
	info, err := NTStatusDecode(status)
	if err != nil {
		return false, err
	}
	return info.SeverityCode == SeverityError, nil
}

// NTStatusIsWarning reports whether the status carries warning severity.
func NTStatusIsWarning(status string) (bool, error) {
	info, err := NTStatusDecode(status)
	if err != nil {
		return false, err
	}
	return info.SeverityCode == SeverityWarning, nil
}
