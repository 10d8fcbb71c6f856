package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xenontools/ppccalc"
	"github.com/xenontools/ppccalc/domain/bitfield"
	"github.com/xenontools/ppccalc/domain/numeric"
)

// operation is one remotely callable calculation.
type operation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	run         func(e *ppccalc.Engine, body []byte) (any, error)
}

// op binds a request DTO type to an engine call. An empty body decodes
// to the DTO's zero value so that defaults still apply.
func op[T any](name, description string, fn func(*ppccalc.Engine, T) (any, error)) operation {
	return operation{
		Name:        name,
		Description: description,
		run: func(e *ppccalc.Engine, body []byte) (any, error) {
			var req T
			if len(body) > 0 {
				if err := json.Unmarshal(body, &req); err != nil {
					return nil, numeric.ParseErrorf("invalid request body: %v", err)
				}
			}
			return fn(e, req)
		},
	}
}

func intOr(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// Request DTOs. Zero values mean "use the documented default".

type valueRequest struct {
	Value string `json:"value"`
	Bits  int    `json:"bits"`
}

type hexToDecRequest struct {
	Hex    string `json:"hex"`
	Signed *bool  `json:"signed"`
	Bits   int    `json:"bits"`
}

type decToHexRequest struct {
	Decimal string `json:"decimal"`
	Bits    int    `json:"bits"`
}

type signExtendRequest struct {
	Value    string `json:"value"`
	FromBits int    `json:"from_bits"`
	ToBits   int    `json:"to_bits"`
}

type offsetRequest struct {
	Base   string `json:"base"`
	Offset string `json:"offset"`
}

type rangeRequest struct {
	Start string `json:"start"`
	Size  string `json:"size"`
}

type maskRequest struct {
	StartBit int `json:"start_bit"`
	EndBit   int `json:"end_bit"`
	Bits     int `json:"bits"`
}

type shiftRequest struct {
	Value     string `json:"value"`
	Amount    int    `json:"amount"`
	Direction string `json:"direction"`
	Logical   *bool  `json:"logical"`
	Bits      int    `json:"bits"`
}

type extractRequest struct {
	Value    string `json:"value"`
	StartBit int    `json:"start_bit"`
	NumBits  int    `json:"num_bits"`
	Bits     int    `json:"bits"`
}

type rlwinmRequest struct {
	Value     string `json:"value"`
	Shift     int    `json:"shift"`
	MaskBegin int    `json:"mask_begin"`
	MaskEnd   int    `json:"mask_end"`
}

type addressRequest struct {
	Address string `json:"address"`
}

type alignRequest struct {
	Address  string `json:"address"`
	Size     string `json:"size"`
	PageSize int    `json:"page_size"`
	Boundary int    `json:"boundary"`
}

type unitsRequest struct {
	Bytes          string `json:"bytes"`
	Sectors        string `json:"sectors"`
	SectorsPerUnit int    `json:"sectors_per_unit"`
	BytesPerSector int    `json:"bytes_per_sector"`
}

type counterRequest struct {
	Ticks    string  `json:"ticks"`
	Timebase string  `json:"timebase"`
	Ms       float64 `json:"ms"`
}

type timingRequest struct {
	Hz                float64 `json:"hz"`
	FrameTimeMs       float64 `json:"frame_time_ms"`
	TargetFps         float64 `json:"target_fps"`
	ActualFrameTimeMs float64 `json:"actual_frame_time_ms"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type expressionRequest struct {
	Expression string `json:"expression"`
}

// catalog lists every operation the API dispatches, in the order
// /operations reports them.
func catalog() []operation {
	return []operation{
		op("hex_to_dec", "Convert hex to decimal with signed and unsigned interpretations",
			func(e *ppccalc.Engine, r hexToDecRequest) (any, error) {
				return e.HexToDec(r.Hex, boolOr(r.Signed, true), intOr(r.Bits, 32))
			}),
		op("dec_to_hex", "Convert decimal (possibly negative) to zero-padded hex",
			func(e *ppccalc.Engine, r decToHexRequest) (any, error) {
				return e.DecToHex(r.Decimal, intOr(r.Bits, 32))
			}),
		op("twos_complement", "Opposite-signedness interpretation of a value",
			func(e *ppccalc.Engine, r valueRequest) (any, error) {
				return e.TwosComplement(r.Value, intOr(r.Bits, 32))
			}),
		op("sign_extend", "Sign-extend a value to a wider width",
			func(e *ppccalc.Engine, r signExtendRequest) (any, error) {
				return e.SignExtend(r.Value, intOr(r.FromBits, 16), intOr(r.ToBits, 32))
			}),
		op("add_offset", "Add an offset to a base with 32-bit wraparound",
			func(e *ppccalc.Engine, r offsetRequest) (any, error) {
				return e.AddOffset(r.Base, r.Offset)
			}),
		op("address_range", "Compute [start, start+size)",
			func(e *ppccalc.Engine, r rangeRequest) (any, error) {
				return e.AddressRange(r.Start, r.Size)
			}),
		op("bit_mask", "Build an inclusive LSB-origin bit mask",
			func(e *ppccalc.Engine, r maskRequest) (any, error) {
				return e.BitMask(r.StartBit, r.EndBit, intOr(r.Bits, 32))
			}),
		op("bit_shift", "Shift a value logically or arithmetically",
			func(e *ppccalc.Engine, r shiftRequest) (any, error) {
				direction := bitfield.Direction(r.Direction)
				if r.Direction == "" {
					direction = bitfield.DirectionLeft
				}
				return e.BitShift(r.Value, r.Amount, direction, boolOr(r.Logical, true), intOr(r.Bits, 32))
			}),
		op("bit_extract", "Extract an unsigned bit field",
			func(e *ppccalc.Engine, r extractRequest) (any, error) {
				return e.BitExtract(r.Value, r.StartBit, r.NumBits, intOr(r.Bits, 32))
			}),
		op("rlwinm", "PowerPC rotate-left-then-mask (MSB-origin MB/ME)",
			func(e *ppccalc.Engine, r rlwinmRequest) (any, error) {
				return e.Rlwinm(r.Value, r.Shift, r.MaskBegin, r.MaskEnd)
			}),
		op("byte_swap_16", "Reverse byte order of a 16-bit value",
			func(e *ppccalc.Engine, r valueRequest) (any, error) { return e.ByteSwap16(r.Value) }),
		op("byte_swap_32", "Reverse byte order of a 32-bit value",
			func(e *ppccalc.Engine, r valueRequest) (any, error) { return e.ByteSwap32(r.Value) }),
		op("byte_swap_64", "Reverse byte order of a 64-bit value",
			func(e *ppccalc.Engine, r valueRequest) (any, error) { return e.ByteSwap64(r.Value) }),
		op("byte_swap_float", "Byte-swap a 32-bit pattern, reading it as IEEE-754 on both sides",
			func(e *ppccalc.Engine, r valueRequest) (any, error) { return e.ByteSwapFloat(r.Value) }),
		op("ppc_memory_map", "Classify an address against the guest memory map",
			func(e *ppccalc.Engine, r addressRequest) (any, error) { return e.MemoryMap(r.Address) }),
		op("is_valid_ppc_address", "Report whether an address is inside the guest image",
			func(e *ppccalc.Engine, r addressRequest) (any, error) { return e.IsValidAddress(r.Address) }),
		op("round_to_page", "Round a size up to the next page multiple",
			func(e *ppccalc.Engine, r alignRequest) (any, error) {
				return e.RoundToPage(r.Size, intOr(r.PageSize, 4096))
			}),
		op("page_align", "Round an address up to the next page boundary",
			func(e *ppccalc.Engine, r alignRequest) (any, error) {
				return e.PageAlign(r.Address, intOr(r.PageSize, 4096))
			}),
		op("align_address", "Align an address to a power-of-two boundary",
			func(e *ppccalc.Engine, r alignRequest) (any, error) {
				return e.AlignAddress(r.Address, r.Boundary)
			}),
		op("allocation_units", "Convert bytes to whole allocation units",
			func(e *ppccalc.Engine, r unitsRequest) (any, error) {
				return e.AllocationUnits(r.Bytes, intOr(r.SectorsPerUnit, 8), intOr(r.BytesPerSector, 512))
			}),
		op("sectors_to_bytes", "Convert a sector count to bytes",
			func(e *ppccalc.Engine, r unitsRequest) (any, error) {
				return e.SectorsToBytes(r.Sectors, intOr(r.BytesPerSector, 512))
			}),
		op("perf_ticks_to_ms", "Convert performance-counter ticks to milliseconds",
			func(e *ppccalc.Engine, r counterRequest) (any, error) { return e.PerfTicksToMs(r.Ticks) }),
		op("ms_to_perf_ticks", "Convert milliseconds to performance-counter ticks",
			func(e *ppccalc.Engine, r counterRequest) (any, error) { return e.MsToPerfTicks(r.Ms) }),
		op("timebase_to_seconds", "Convert a time-base reading to seconds",
			func(e *ppccalc.Engine, r counterRequest) (any, error) { return e.TimebaseToSeconds(r.Timebase) }),
		op("hz_to_ms", "Convert a frequency to its period in milliseconds",
			func(e *ppccalc.Engine, r timingRequest) (any, error) { return e.HzToMs(r.Hz) }),
		op("fps_calculator", "Convert a frame time to frames per second",
			func(e *ppccalc.Engine, r timingRequest) (any, error) { return e.FPSCalculator(r.FrameTimeMs) }),
		op("timing_analysis", "Compare an actual frame time to a target FPS budget",
			func(e *ppccalc.Engine, r timingRequest) (any, error) {
				return e.TimingAnalysis(r.TargetFps, r.ActualFrameTimeMs)
			}),
		op("ntstatus_decode", "Decompose a 32-bit NTSTATUS code",
			func(e *ppccalc.Engine, r statusRequest) (any, error) { return e.NTStatusDecode(r.Status) }),
		op("ntstatus_is_error", "Report whether a status carries error severity",
			func(e *ppccalc.Engine, r statusRequest) (any, error) {
				ok, err := e.NTStatusIsError(r.Status)
				if err != nil {
					return nil, err
				}
				return map[string]bool{"result": ok}, nil
			}),
		op("ntstatus_is_warning", "Report whether a status carries warning severity",
			func(e *ppccalc.Engine, r statusRequest) (any, error) {
				ok, err := e.NTStatusIsWarning(r.Status)
				if err != nil {
					return nil, err
				}
				return map[string]bool{"result": ok}, nil
			}),
		op("calculate", "Evaluate an arithmetic/bitwise expression",
			func(e *ppccalc.Engine, r expressionRequest) (any, error) { return e.Calculate(r.Expression) }),
	}
}

// CalcRouter handles the calculator API endpoints.
type CalcRouter struct {
	engine *ppccalc.Engine
	logger *slog.Logger
	ops    map[string]operation
	order  []operation
}

// NewCalcRouter creates a CalcRouter over the given engine.
func NewCalcRouter(engine *ppccalc.Engine, logger *slog.Logger) *CalcRouter {
	if logger == nil {
		logger = slog.Default()
	}

	order := catalog()
	ops := make(map[string]operation, len(order))
	for _, o := range order {
		ops[o.Name] = o
	}
	return &CalcRouter{
		engine: engine,
		logger: logger,
		ops:    ops,
		order:  order,
	}
}

// Routes returns the chi router for the calculator endpoints.
func (r *CalcRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/operations", r.ListOperations)
	router.Post("/calc/{name}", r.Calculate)

	return router
}

// ListOperations handles GET /api/v1/operations.
func (r *CalcRouter) ListOperations(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"operations": r.order})
}

// Calculate handles POST /api/v1/calc/{name}: it dispatches the named
// operation over the JSON body and returns the result record. Engine
// failures map to 400 (parse) or 422 (range/domain) with the failure
// kind and message; they never take the process down.
func (r *CalcRouter) Calculate(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "name")
	o, ok := r.ops[name]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "unknown operation "+name)
		return
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "read request body: "+err.Error())
		return
	}

	result, err := o.run(r.engine, body)
	if err != nil {
		status, kind := errorStatus(err)
		r.logger.Debug("operation failed",
			"operation", name,
			"kind", kind,
			"error", err.Error(),
		)
		writeError(w, status, kind, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// errorStatus maps an engine error to an HTTP status and kind tag.
func errorStatus(err error) (int, string) {
	var engineErr *numeric.Error
	if !errors.As(err, &engineErr) {
		return http.StatusInternalServerError, "internal_error"
	}
	switch engineErr.Kind() {
	case numeric.KindParse:
		return http.StatusBadRequest, string(numeric.KindParse)
	default:
		return http.StatusUnprocessableEntity, string(engineErr.Kind())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, map[string]string{"error": kind, "message": message})
}
