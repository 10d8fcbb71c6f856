// Package mcp exposes every calculator operation as a Model Context
// Protocol tool. Handlers coerce raw arguments into the primitive types
// the engine expects, apply the documented defaults, and serialize the
// returned record as JSON text. Engine failures come back as error-
// flagged tool results, never as transport errors.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xenontools/ppccalc"
	"github.com/xenontools/ppccalc/domain/bitfield"
)

// Server wraps the MCP server with the calculator tools.
type Server struct {
	mcpServer *server.MCPServer
	engine    *ppccalc.Engine
	logger    *slog.Logger
}

// NewServer creates an MCP server serving the given engine.
func NewServer(engine *ppccalc.Engine, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		engine: engine,
		logger: logger,
	}

	mcpServer := server.NewMCPServer(
		"ppccalc",
		version,
		server.WithToolCapabilities(true),
	)

	s.registerConversionTools(mcpServer)
	s.registerBitfieldTools(mcpServer)
	s.registerEndianTools(mcpServer)
	s.registerDecodeTools(mcpServer)
	s.registerExpressionTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

// MCPServer returns the underlying MCP server for HTTP mounting.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// result marshals an engine record as a text tool result.
func (s *Server) result(v any) *mcp.CallToolResult {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("marshal tool result", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err))
	}
	return mcp.NewToolResultText(string(jsonBytes))
}

// failure maps an engine error to an error-flagged tool result. The
// engine's error strings already carry the failure kind as a prefix.
func failure(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(err.Error())
}

func (s *Server) registerConversionTools(srv *server.MCPServer) {
	srv.AddTool(mcp.NewTool("hex_to_dec",
		mcp.WithDescription("Convert a hex value to decimal with signed and unsigned interpretations"),
		mcp.WithString("hex", mcp.Required(), mcp.Description("Hex literal, with or without 0x prefix")),
		mcp.WithBoolean("signed", mcp.Description("Interpret as signed two's complement (default: true)")),
		mcp.WithNumber("bits", mcp.Description("Bit width: 8, 16, 32 or 64 (default: 32)")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		hex, err := request.RequireString("hex")
		if err != nil {
			return mcp.NewToolResultError("hex is required"), nil
		}
		out, err := s.engine.HexToDec(hex, request.GetBool("signed", true), request.GetInt("bits", 32))
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})

	srv.AddTool(mcp.NewTool("dec_to_hex",
		mcp.WithDescription("Convert a decimal value (possibly negative) to zero-padded hex"),
		mcp.WithString("decimal", mcp.Required(), mcp.Description("Decimal literal")),
		mcp.WithNumber("bits", mcp.Description("Bit width: 8, 16, 32 or 64 (default: 32)")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		decimal, err := request.RequireString("decimal")
		if err != nil {
			return mcp.NewToolResultError("decimal is required"), nil
		}
		out, err := s.engine.DecToHex(decimal, request.GetInt("bits", 32))
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})

	srv.AddTool(mcp.NewTool("twos_complement",
		mcp.WithDescription("Return the opposite-signedness interpretation of a hex or decimal value"),
		mcp.WithString("value", mcp.Required(), mcp.Description("Hex or decimal literal")),
		mcp.WithNumber("bits", mcp.Description("Bit width: 8, 16, 32 or 64 (default: 32)")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		value, err := request.RequireString("value")
		if err != nil {
			return mcp.NewToolResultError("value is required"), nil
		}
		out, err := s.engine.TwosComplement(value, request.GetInt("bits", 32))
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})

	srv.AddTool(mcp.NewTool("sign_extend",
		mcp.WithDescription("Sign-extend a two's-complement value to a wider bit width"),
		mcp.WithString("value", mcp.Required(), mcp.Description("Hex or decimal literal")),
		mcp.WithNumber("from_bits", mcp.Description("Source width (default: 16)")),
		mcp.WithNumber("to_bits", mcp.Description("Target width (default: 32)")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		value, err := request.RequireString("value")
		if err != nil {
			return mcp.NewToolResultError("value is required"), nil
		}
		out, err := s.engine.SignExtend(value, request.GetInt("from_bits", 16), request.GetInt("to_bits", 32))
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})

	srv.AddTool(mcp.NewTool("add_offset",
		mcp.WithDescription("Add an offset to a base address with 32-bit wraparound and overflow flag"),
		mcp.WithString("base", mcp.Required(), mcp.Description("Base address, hex or decimal")),
		mcp.WithString("offset", mcp.Required(), mcp.Description("Offset, hex or decimal, possibly negative")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		base, err := request.RequireString("base")
		if err != nil {
			return mcp.NewToolResultError("base is required"), nil
		}
		offset, err := request.RequireString("offset")
		if err != nil {
			return mcp.NewToolResultError("offset is required"), nil
		}
		out, err := s.engine.AddOffset(base, offset)
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})

	srv.AddTool(mcp.NewTool("address_range",
		mcp.WithDescription("Compute the half-open address range [start, start+size)"),
		mcp.WithString("start", mcp.Required(), mcp.Description("Start address, hex or decimal")),
		mcp.WithString("size", mcp.Required(), mcp.Description("Range size in bytes, hex or decimal")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start, err := request.RequireString("start")
		if err != nil {
			return mcp.NewToolResultError("start is required"), nil
		}
		size, err := request.RequireString("size")
		if err != nil {
			return mcp.NewToolResultError("size is required"), nil
		}
		out, err := s.engine.AddressRange(start, size)
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})
}

func (s *Server) registerBitfieldTools(srv *server.MCPServer) {
	srv.AddTool(mcp.NewTool("bit_mask",
		mcp.WithDescription("Build an inclusive bit mask, LSB-origin; bounds may come in either order"),
		mcp.WithNumber("start_bit", mcp.Required(), mcp.Description("First bit of the mask, 0 = LSB")),
		mcp.WithNumber("end_bit", mcp.Required(), mcp.Description("Last bit of the mask, 0 = LSB")),
		mcp.WithNumber("bits", mcp.Description("Bit width: 8, 16, 32 or 64 (default: 32)")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		startBit, err := request.RequireInt("start_bit")
		if err != nil {
			return mcp.NewToolResultError("start_bit is required"), nil
		}
		endBit, err := request.RequireInt("end_bit")
		if err != nil {
			return mcp.NewToolResultError("end_bit is required"), nil
		}
		out, err := s.engine.BitMask(startBit, endBit, request.GetInt("bits", 32))
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})

	srv.AddTool(mcp.NewTool("bit_shift",
		mcp.WithDescription("Shift a value left or right, logically or arithmetically"),
		mcp.WithString("value", mcp.Required(), mcp.Description("Hex or decimal literal")),
		mcp.WithNumber("amount", mcp.Required(), mcp.Description("Shift amount in bits")),
		mcp.WithString("direction", mcp.Description("left or right (default: left)")),
		mcp.WithBoolean("logical", mcp.Description("Logical (zero-fill) shift; false = arithmetic (default: true)")),
		mcp.WithNumber("bits", mcp.Description("Bit width: 8, 16, 32 or 64 (default: 32)")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		value, err := request.RequireString("value")
		if err != nil {
			return mcp.NewToolResultError("value is required"), nil
		}
		amount, err := request.RequireInt("amount")
		if err != nil {
			return mcp.NewToolResultError("amount is required"), nil
		}
		direction := bitfield.Direction(request.GetString("direction", string(bitfield.DirectionLeft)))
		out, err := s.engine.BitShift(value, amount, direction, request.GetBool("logical", true), request.GetInt("bits", 32))
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})

	srv.AddTool(mcp.NewTool("bit_extract",
		mcp.WithDescription("Extract an unsigned bit field: (value >> start_bit) & ((1 << num_bits) - 1)"),
		mcp.WithString("value", mcp.Required(), mcp.Description("Hex or decimal literal")),
		mcp.WithNumber("start_bit", mcp.Required(), mcp.Description("First bit of the field, 0 = LSB")),
		mcp.WithNumber("num_bits", mcp.Required(), mcp.Description("Field width in bits")),
		mcp.WithNumber("bits", mcp.Description("Bit width: 8, 16, 32 or 64 (default: 32)")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		value, err := request.RequireString("value")
		if err != nil {
			return mcp.NewToolResultError("value is required"), nil
		}
		startBit, err := request.RequireInt("start_bit")
		if err != nil {
			return mcp.NewToolResultError("start_bit is required"), nil
		}
		numBits, err := request.RequireInt("num_bits")
		if err != nil {
			return mcp.NewToolResultError("num_bits is required"), nil
		}
		out, err := s.engine.BitExtract(value, startBit, numBits, request.GetInt("bits", 32))
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})

	srv.AddTool(mcp.NewTool("rlwinm",
		mcp.WithDescription("PowerPC rlwinm: rotate a 32-bit word left, then AND with an MSB-origin MB/ME mask (MB > ME wraps)"),
		mcp.WithString("value", mcp.Required(), mcp.Description("32-bit value, hex or decimal")),
		mcp.WithNumber("shift", mcp.Required(), mcp.Description("Rotate amount, taken mod 32")),
		mcp.WithNumber("mask_begin", mcp.Required(), mcp.Description("MB: mask begin, 0 = MSB")),
		mcp.WithNumber("mask_end", mcp.Required(), mcp.Description("ME: mask end, 0 = MSB")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		value, err := request.RequireString("value")
		if err != nil {
			return mcp.NewToolResultError("value is required"), nil
		}
		shift, err := request.RequireInt("shift")
		if err != nil {
			return mcp.NewToolResultError("shift is required"), nil
		}
		maskBegin, err := request.RequireInt("mask_begin")
		if err != nil {
			return mcp.NewToolResultError("mask_begin is required"), nil
		}
		maskEnd, err := request.RequireInt("mask_end")
		if err != nil {
			return mcp.NewToolResultError("mask_end is required"), nil
		}
		out, err := s.engine.Rlwinm(value, shift, maskBegin, maskEnd)
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})
}

func (s *Server) registerEndianTools(srv *server.MCPServer) {
	type swapOp struct {
		name string
		desc string
		fn   func(string) (any, error)
	}
	ops := []swapOp{
		{"byte_swap_16", "Reverse the byte order of a 16-bit value", func(v string) (any, error) { return s.engine.ByteSwap16(v) }},
		{"byte_swap_32", "Reverse the byte order of a 32-bit value", func(v string) (any, error) { return s.engine.ByteSwap32(v) }},
		{"byte_swap_64", "Reverse the byte order of a 64-bit value", func(v string) (any, error) { return s.engine.ByteSwap64(v) }},
		{"byte_swap_float", "Byte-swap a 32-bit pattern and read it as an IEEE-754 float on both sides", func(v string) (any, error) { return s.engine.ByteSwapFloat(v) }},
	}

	for _, op := range ops {
		fn := op.fn
		srv.AddTool(mcp.NewTool(op.name,
			mcp.WithDescription(op.desc),
			mcp.WithString("value", mcp.Required(), mcp.Description("Hex or decimal literal")),
		), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			value, err := request.RequireString("value")
			if err != nil {
				return mcp.NewToolResultError("value is required"), nil
			}
			out, err := fn(value)
			if err != nil {
				return failure(err), nil
			}
			return s.result(out), nil
		})
	}
}

func (s *Server) registerDecodeTools(srv *server.MCPServer) {
	srv.AddTool(mcp.NewTool("ppc_memory_map",
		mcp.WithDescription("Classify a 32-bit address against the guest memory region table"),
		mcp.WithString("address", mcp.Required(), mcp.Description("Guest address, hex or decimal")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		address, err := request.RequireString("address")
		if err != nil {
			return mcp.NewToolResultError("address is required"), nil
		}
		out, err := s.engine.MemoryMap(address)
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})

	srv.AddTool(mcp.NewTool("is_valid_ppc_address",
		mcp.WithDescription("Report whether an address falls inside the guest virtual image"),
		mcp.WithString("address", mcp.Required(), mcp.Description("Guest address, hex or decimal")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		address, err := request.RequireString("address")
		if err != nil {
			return mcp.NewToolResultError("address is required"), nil
		}
		out, err := s.engine.IsValidAddress(address)
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})

	srv.AddTool(mcp.NewTool("round_to_page",
		mcp.WithDescription("Round a size up to the next page multiple"),
		mcp.WithString("size", mcp.Required(), mcp.Description("Size in bytes, hex or decimal")),
		mcp.WithNumber("page_size", mcp.Description("Page size, power of two (default: 4096)")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		size, err := request.RequireString("size")
		if err != nil {
			return mcp.NewToolResultError("size is required"), nil
		}
		out, err := s.engine.RoundToPage(size, request.GetInt("page_size", 4096))
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})

	srv.AddTool(mcp.NewTool("page_align",
		mcp.WithDescription("Round an address up to the next page boundary"),
		mcp.WithString("address", mcp.Required(), mcp.Description("Address, hex or decimal")),
		mcp.WithNumber("page_size", mcp.Description("Page size, power of two (default: 4096)")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		address, err := request.RequireString("address")
		if err != nil {
			return mcp.NewToolResultError("address is required"), nil
		}
		out, err := s.engine.PageAlign(address, request.GetInt("page_size", 4096))
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})

	srv.AddTool(mcp.NewTool("align_address",
		mcp.WithDescription("Align an address up to a power-of-two boundary, reporting the adjustment"),
		mcp.WithString("address", mcp.Required(), mcp.Description("Address, hex or decimal")),
		mcp.WithNumber("boundary", mcp.Required(), mcp.Description("Alignment boundary, power of two")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		address, err := request.RequireString("address")
		if err != nil {
			return mcp.NewToolResultError("address is required"), nil
		}
		boundary, err := request.RequireInt("boundary")
		if err != nil {
			return mcp.NewToolResultError("boundary is required"), nil
		}
		out, err := s.engine.AlignAddress(address, boundary)
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})

	srv.AddTool(mcp.NewTool("allocation_units",
		mcp.WithDescription("Convert a byte count to whole allocation units, rounding partial sectors up"),
		mcp.WithString("bytes", mcp.Required(), mcp.Description("Byte count, hex or decimal")),
		mcp.WithNumber("sectors_per_unit", mcp.Description("Sectors per allocation unit (default: 8)")),
		mcp.WithNumber("bytes_per_sector", mcp.Description("Bytes per sector (default: 512)")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		bytes, err := request.RequireString("bytes")
		if err != nil {
			return mcp.NewToolResultError("bytes is required"), nil
		}
		out, err := s.engine.AllocationUnits(bytes,
			request.GetInt("sectors_per_unit", 8), request.GetInt("bytes_per_sector", 512))
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})

	srv.AddTool(mcp.NewTool("sectors_to_bytes",
		mcp.WithDescription("Convert a sector count to bytes"),
		mcp.WithString("sectors", mcp.Required(), mcp.Description("Sector count, hex or decimal")),
		mcp.WithNumber("bytes_per_sector", mcp.Description("Bytes per sector (default: 512)")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sectors, err := request.RequireString("sectors")
		if err != nil {
			return mcp.NewToolResultError("sectors is required"), nil
		}
		out, err := s.engine.SectorsToBytes(sectors, request.GetInt("bytes_per_sector", 512))
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})

	srv.AddTool(mcp.NewTool("perf_ticks_to_ms",
		mcp.WithDescription("Convert performance-counter ticks (49,875,000 Hz) to milliseconds"),
		mcp.WithString("ticks", mcp.Required(), mcp.Description("Tick count, hex or decimal, up to 64 bits")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticks, err := request.RequireString("ticks")
		if err != nil {
			return mcp.NewToolResultError("ticks is required"), nil
		}
		out, err := s.engine.PerfTicksToMs(ticks)
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})

	srv.AddTool(mcp.NewTool("ms_to_perf_ticks",
		mcp.WithDescription("Convert milliseconds to performance-counter ticks (49,875,000 Hz)"),
		mcp.WithNumber("ms", mcp.Required(), mcp.Description("Milliseconds, non-negative")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ms, err := request.RequireFloat("ms")
		if err != nil {
			return mcp.NewToolResultError("ms is required"), nil
		}
		out, err := s.engine.MsToPerfTicks(ms)
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})

	srv.AddTool(mcp.NewTool("timebase_to_seconds",
		mcp.WithDescription("Convert a time-base reading (49,875,000 Hz) to seconds"),
		mcp.WithString("timebase", mcp.Required(), mcp.Description("Time-base value, hex or decimal, up to 64 bits")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		timebase, err := request.RequireString("timebase")
		if err != nil {
			return mcp.NewToolResultError("timebase is required"), nil
		}
		out, err := s.engine.TimebaseToSeconds(timebase)
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})

	srv.AddTool(mcp.NewTool("hz_to_ms",
		mcp.WithDescription("Convert a frequency in Hz to its period in milliseconds"),
		mcp.WithNumber("hz", mcp.Required(), mcp.Description("Frequency, positive")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		hz, err := request.RequireFloat("hz")
		if err != nil {
			return mcp.NewToolResultError("hz is required"), nil
		}
		out, err := s.engine.HzToMs(hz)
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})

	srv.AddTool(mcp.NewTool("fps_calculator",
		mcp.WithDescription("Convert a frame time in milliseconds to frames per second"),
		mcp.WithNumber("frame_time_ms", mcp.Required(), mcp.Description("Frame time in milliseconds, positive")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		frameTime, err := request.RequireFloat("frame_time_ms")
		if err != nil {
			return mcp.NewToolResultError("frame_time_ms is required"), nil
		}
		out, err := s.engine.FPSCalculator(frameTime)
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})

	srv.AddTool(mcp.NewTool("timing_analysis",
		mcp.WithDescription("Compare an actual frame time against the budget implied by a target FPS"),
		mcp.WithNumber("target_fps", mcp.Required(), mcp.Description("Target frame rate, positive")),
		mcp.WithNumber("actual_frame_time_ms", mcp.Required(), mcp.Description("Measured frame time in milliseconds")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		targetFps, err := request.RequireFloat("target_fps")
		if err != nil {
			return mcp.NewToolResultError("target_fps is required"), nil
		}
		actual, err := request.RequireFloat("actual_frame_time_ms")
		if err != nil {
			return mcp.NewToolResultError("actual_frame_time_ms is required"), nil
		}
		out, err := s.engine.TimingAnalysis(targetFps, actual)
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})

	srv.AddTool(mcp.NewTool("ntstatus_decode",
		mcp.WithDescription("Decompose a 32-bit NTSTATUS into severity, customer bit, facility, and code"),
		mcp.WithString("status", mcp.Required(), mcp.Description("Status code, hex or decimal")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		status, err := request.RequireString("status")
		if err != nil {
			return mcp.NewToolResultError("status is required"), nil
		}
		out, err := s.engine.NTStatusDecode(status)
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})

	type statusPredicate struct {
		name string
		desc string
		fn   func(string) (bool, error)
	}
	predicates := []statusPredicate{
		{"ntstatus_is_error", "Report whether an NTSTATUS carries error severity", s.engine.NTStatusIsError},
		{"ntstatus_is_warning", "Report whether an NTSTATUS carries warning severity", s.engine.NTStatusIsWarning},
	}
	for _, p := range predicates {
		fn := p.fn
		srv.AddTool(mcp.NewTool(p.name,
			mcp.WithDescription(p.desc),
			mcp.WithString("status", mcp.Required(), mcp.Description("Status code, hex or decimal")),
		), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			status, err := request.RequireString("status")
			if err != nil {
				return mcp.NewToolResultError("status is required"), nil
			}
			ok, err := fn(status)
			if err != nil {
				return failure(err), nil
			}
			return s.result(map[string]bool{"result": ok}), nil
		})
	}
}

func (s *Server) registerExpressionTools(srv *server.MCPServer) {
	srv.AddTool(mcp.NewTool("calculate",
		mcp.WithDescription("Evaluate an arithmetic/bitwise expression with decimal, 0x-hex and 0b-binary literals"),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Expression over + - * / % ** << >> & | ^ ~ and parentheses")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		expression, err := request.RequireString("expression")
		if err != nil {
			return mcp.NewToolResultError("expression is required"), nil
		}
		out, err := s.engine.Calculate(expression)
		if err != nil {
			return failure(err), nil
		}
		return s.result(out), nil
	})
}
