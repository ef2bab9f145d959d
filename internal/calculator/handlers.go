package calculator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"arithviz/internal/booth"
	"arithviz/internal/division"
	"arithviz/internal/examples"
	"arithviz/internal/handlers"
	"arithviz/internal/observability"
	"arithviz/internal/operand"
	"arithviz/internal/stepper"
	"arithviz/internal/table"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// call carries the per-request plumbing shared by every calculator handler.
type call struct {
	ctx       context.Context
	span      trace.Span
	logger    *zap.Logger
	requestID string
	op        string
	w         http.ResponseWriter
}

func begin(w http.ResponseWriter, r *http.Request, op string) *call {
	ctx := r.Context()
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", op),
		trace.WithAttributes(
			attribute.String("calculator.operation", op),
			attribute.String("request.id", requestID),
		),
	)

	return &call{
		ctx:       ctx,
		span:      span,
		logger:    observability.LoggerWithTrace(ctx),
		requestID: requestID,
		op:        op,
		w:         w,
	}
}

// statusFor maps engine errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, operand.ErrInvalidInput),
		errors.Is(err, operand.ErrOutOfRange),
		errors.Is(err, division.ErrDivisionByZero):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (c *call) fail(msg string, err error) {
	observability.RecordError(c.ctx, c.span, c.logger, errorCounter, c.op, msg, err, statusFor(err), c.w)
}

func (c *call) record(steps int, elapsed, result float64) {
	attrs := metric.WithAttributes(attribute.String("operation", c.op))
	runsCounter.Add(c.ctx, 1, attrs)
	runDuration.Record(c.ctx, elapsed, attrs)
	runSteps.Record(c.ctx, int64(steps), attrs)
	resultGauge.Record(c.ctx, result, attrs)

	c.span.AddEvent("trace.complete", trace.WithAttributes(
		attribute.Int("steps", steps),
		attribute.Float64("result", result),
		attribute.Float64("duration_ms", elapsed),
	))
	c.span.SetStatus(codes.Ok, "")
}

func (c *call) decode(r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		c.fail("invalid request body", fmt.Errorf("%w: %v", operand.ErrInvalidInput, err))
		return false
	}
	return true
}

func (c *call) cursor(length, index int, move string) (stepper.Cursor, bool) {
	cur, err := stepper.At(length, index).Move(move)
	if err != nil {
		c.fail("invalid cursor move", fmt.Errorf("%w: %v", operand.ErrInvalidInput, err))
		return cur, false
	}
	return cur, true
}

func viewOf(c stepper.Cursor) CursorView {
	return CursorView{
		Index:    c.Index(),
		Position: c.Position(),
		AtStart:  c.AtStart(),
		AtEnd:    c.AtEnd(),
	}
}

func wantsText(r *http.Request) bool {
	return r.URL.Query().Get("format") == "text"
}

func elapsedMS(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

// ---------------------------------------------------------------------------
// Handler: division trace
// ---------------------------------------------------------------------------

// Divide handles POST /calculator/divide
func Divide(w http.ResponseWriter, r *http.Request) {
	// --- 1. Custom child span ---
	c := begin(w, r, "divide")
	defer c.span.End()

	// --- 2. Decode and validate ---
	var req DivideRequest
	if !c.decode(r, &req) {
		return
	}

	dividend, err := req.Dividend.Int()
	if err != nil {
		c.fail(err.Error(), err)
		return
	}
	divisor, err := req.Divisor.Int()
	if err != nil {
		c.fail(err.Error(), err)
		return
	}
	alg, err := division.ParseAlgorithm(req.Algorithm)
	if err != nil {
		c.fail(err.Error(), err)
		return
	}
	mode, err := division.ParseMode(req.Mode)
	if err != nil {
		c.fail(err.Error(), err)
		return
	}

	c.span.SetAttributes(
		attribute.Int("division.dividend", dividend),
		attribute.Int("division.divisor", divisor),
		attribute.String("division.algorithm", string(alg)),
		attribute.String("division.mode", string(mode)),
	)

	// --- 3. Build the trace (timed for histogram) ---
	start := time.Now()
	run, err := division.Divide(dividend, divisor, alg, req.BitLength, division.WithMode(mode))
	elapsed := elapsedMS(start)
	if err != nil {
		c.fail(err.Error(), err)
		return
	}

	cur, ok := c.cursor(run.Len(), req.Cursor, req.Move)
	if !ok {
		return
	}

	// --- 4. Span events per step ---
	for _, s := range run.Steps {
		c.span.AddEvent("division.step", trace.WithAttributes(
			attribute.Int("index", s.Index),
			attribute.String("action", string(s.Action)),
			attribute.String("a", s.A.String()),
			attribute.String("q", s.Q.String()),
		))
		c.logger.Debug("division step",
			zap.Int("step", s.Index),
			zap.String("action", s.ActionLabel),
			zap.Stringer("a", s.A),
			zap.Stringer("q", s.Q),
			zap.String("quotient_bits", s.QuotientBits),
		)
	}

	// --- 5. Metrics, span status, structured log ---
	c.record(run.Len(), elapsed, float64(run.Quotient()))
	c.span.SetAttributes(
		attribute.Int("division.bit_length", run.BitLength),
		attribute.Int64("division.quotient", int64(run.Quotient())),
		attribute.Int64("division.remainder", int64(run.Remainder())),
	)

	c.logger.Info("division traced",
		zap.Int("dividend", dividend),
		zap.Int("divisor", divisor),
		zap.String("algorithm", string(alg)),
		zap.Int("bit_length", run.BitLength),
		zap.Uint64("quotient", run.Quotient()),
		zap.Uint64("remainder", run.Remainder()),
		zap.Bool("magnitude_only", run.MagnitudeOnly),
		zap.String("request_id", c.requestID),
		zap.Float64("duration_ms", elapsed),
	)

	// --- 6. Respond ---
	if wantsText(r) {
		var buf bytes.Buffer
		if err := table.Division(&buf, run, cur); err != nil {
			c.fail("rendering table", err)
			return
		}
		handlers.WriteText(w, http.StatusOK, buf.Bytes())
		return
	}

	expQ, expR, _ := division.Expected(dividend, divisor)
	step := run.Steps[cur.Index()]
	q, rem := step.Result()

	handlers.WriteJSON(w, http.StatusOK, DivideResponse{
		Operation:       "divide",
		Run:             run,
		Quotient:        run.Quotient(),
		Remainder:       run.Remainder(),
		QuotientBinary:  run.QuotientBinary(),
		RemainderBinary: run.RemainderBinary(),
		Expected:        ExpectedDivision{Quotient: expQ, Remainder: expR},
		TotalSteps:      run.Len(),
		Cursor: DivideCursor{
			CursorView: viewOf(cur),
			Step:       step,
			Quotient:   q,
			Remainder:  rem,
		},
	})
}

// ---------------------------------------------------------------------------
// Handler: Booth's multiplication trace
// ---------------------------------------------------------------------------

// Multiply handles POST /calculator/multiply
func Multiply(w http.ResponseWriter, r *http.Request) {
	c := begin(w, r, "multiply")
	defer c.span.End()

	var req MultiplyRequest
	if !c.decode(r, &req) {
		return
	}

	m, err := req.Multiplicand.Int()
	if err != nil {
		c.fail(err.Error(), err)
		return
	}
	q, err := req.Multiplier.Int()
	if err != nil {
		c.fail(err.Error(), err)
		return
	}

	c.span.SetAttributes(
		attribute.Int("booth.multiplicand", m),
		attribute.Int("booth.multiplier", q),
	)

	start := time.Now()
	run, err := booth.Multiply(m, q, req.BitLength)
	elapsed := elapsedMS(start)
	if err != nil {
		c.fail(err.Error(), err)
		return
	}

	cur, ok := c.cursor(run.Len(), req.Cursor, req.Move)
	if !ok {
		return
	}

	for _, s := range run.Steps {
		c.span.AddEvent("booth.step", trace.WithAttributes(
			attribute.Int("index", s.Index),
			attribute.String("action", string(s.Action)),
			attribute.String("a", s.A.String()),
			attribute.String("q", s.Q.String()),
		))
		c.logger.Debug("booth step",
			zap.Int("step", s.Index),
			zap.String("pair", s.Q0.String()+s.QMinus1.String()),
			zap.String("action", s.ActionLabel),
			zap.Stringer("a", s.A),
			zap.Stringer("q", s.Q),
		)
	}

	c.record(run.Len(), elapsed, float64(run.Product()))
	c.span.SetAttributes(
		attribute.Int("booth.bit_length", run.BitLength),
		attribute.Int64("booth.product", run.Product()),
	)

	c.logger.Info("multiplication traced",
		zap.Int("multiplicand", m),
		zap.Int("multiplier", q),
		zap.Int("bit_length", run.BitLength),
		zap.Int64("product", run.Product()),
		zap.String("request_id", c.requestID),
		zap.Float64("duration_ms", elapsed),
	)

	if wantsText(r) {
		var buf bytes.Buffer
		if err := table.Booth(&buf, run, cur); err != nil {
			c.fail("rendering table", err)
			return
		}
		handlers.WriteText(w, http.StatusOK, buf.Bytes())
		return
	}

	step := run.Steps[cur.Index()]

	handlers.WriteJSON(w, http.StatusOK, MultiplyResponse{
		Operation:     "multiply",
		Run:           run,
		Product:       run.Product(),
		ProductBinary: run.ProductBits(),
		Expected:      int64(m) * int64(q),
		TotalSteps:    run.Len(),
		Cursor: MultiplyCursor{
			CursorView:    viewOf(cur),
			Step:          step,
			Product:       step.Product(),
			ProductBinary: step.ProductBits(),
		},
	})
}

// Examples handles GET /calculator/examples
func Examples(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, ExamplesResponse{
		Division:       examples.Divisions(),
		Multiplication: examples.Multiplications(),
	})
}
