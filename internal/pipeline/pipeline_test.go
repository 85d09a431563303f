package pipeline

import (
	"math"
	"strings"
	"testing"

	"github.com/christmascoding/regelungsmaster/internal/config"
)

func defaultInput() Input {
	return InputFromConfig(config.DefaultConfig().Inputs)
}

func TestRunDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	r := Run(defaultInput(), cfg)

	if len(r.Notices) != 0 {
		t.Fatalf("unexpected notices: %v", r.Notices)
	}

	// Kp=1 on 1/(s+1)^2 closes to 1/(s^2+2s+2): stable and oscillatory.
	if !r.Stability.Stable {
		t.Error("expected stable closed loop")
	}
	if !r.Stability.Oscillatory {
		t.Error("expected oscillatory closed loop")
	}

	if len(r.Freq.Omega) != cfg.Sweep.Points {
		t.Errorf("expected %d sweep points, got %d", cfg.Sweep.Points, len(r.Freq.Omega))
	}
	if r.Step == nil {
		t.Fatal("expected a step response")
	}
	if len(r.Step.Output) != cfg.Step.Points {
		t.Errorf("expected %d step samples, got %d", cfg.Step.Points, len(r.Step.Output))
	}

	// DC gain of the closed loop is 1/2.
	final := r.Step.Output[len(r.Step.Output)-1]
	if math.Abs(final-0.5) > 0.02 {
		t.Errorf("expected settled output near 0.5, got %v", final)
	}
}

func TestRunBadNumeratorFallsBackToIdentity(t *testing.T) {
	in := defaultInput()
	in.Num = "1, oops"

	r := Run(in, config.DefaultConfig())

	if len(r.Notices) == 0 {
		t.Fatal("expected a notice for the bad token")
	}
	if !strings.Contains(r.Notices[0], "oops") {
		t.Errorf("notice does not name the token: %v", r.Notices[0])
	}

	// Identity plant with Kp=1: closed loop 1/2, no poles, stable.
	if len(r.Plant.Num) != 1 || r.Plant.Num[0] != 1 {
		t.Errorf("expected identity plant, got %v/%v", r.Plant.Num, r.Plant.Den)
	}
	if !r.Stability.Stable {
		t.Error("identity fallback must classify stable")
	}
	if r.Step == nil {
		t.Error("fallback system must still produce a step response")
	}
}

func TestRunZPKMode(t *testing.T) {
	in := defaultInput()
	in.ZPK = true
	in.Zeros = "-1"
	in.Poles = "-1, -3"

	r := Run(in, config.DefaultConfig())

	if len(r.Notices) != 0 {
		t.Fatalf("unexpected notices: %v", r.Notices)
	}
	// (s+1)/((s+1)(s+3))
	want := []float64{1, 4, 3}
	for i, c := range want {
		if math.Abs(r.Plant.Den[i]-c) > 1e-9 {
			t.Errorf("denominator %d: expected %v, got %v", i, c, r.Plant.Den[i])
		}
	}
}

func TestRunUnparseableZPKFallsBack(t *testing.T) {
	in := defaultInput()
	in.ZPK = true
	in.Poles = "-1, what"

	r := Run(in, config.DefaultConfig())
	if len(r.Notices) == 0 {
		t.Fatal("expected a notice")
	}
	if len(r.Plant.Den) != 1 || r.Plant.Den[0] != 1 {
		t.Errorf("expected identity fallback, got %v", r.Plant.Den)
	}
}

func TestRunImproperClosedLoopSkipsStep(t *testing.T) {
	// Open loop -s/(s+1): 1+L cancels the leading term, the closed loop
	// collapses to -s/1 and has no state-space realization.
	in := defaultInput()
	in.Num = "-1, 0"
	in.Den = "1, 1"

	r := Run(in, config.DefaultConfig())

	if r.Step != nil {
		t.Error("expected step response skipped for improper closed loop")
	}
	found := false
	for _, n := range r.Notices {
		if strings.Contains(n, "step response") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a step-response notice, got %v", r.Notices)
	}

	// The rest of the pipeline still runs.
	if r.Freq == nil || r.Bode == nil || r.Nyquist == nil || r.Locus == nil {
		t.Error("frequency-domain charts must survive a skipped step response")
	}
}

func TestRunLeadLagMarkers(t *testing.T) {
	in := defaultInput()
	in.LeadLag = true
	in.Z = 2.0
	in.P = 0.5

	r := Run(in, config.DefaultConfig())

	if !r.LeadZeroOK || !r.LeadPoleOK {
		t.Fatal("expected lead/lag markers")
	}
	if real(r.LeadZero) != -0.5 || real(r.LeadPole) != -2 {
		t.Errorf("expected markers -0.5 and -2, got %v, %v", r.LeadZero, r.LeadPole)
	}

	// Lead/lag contributes a pole and zero to the open loop.
	if r.OpenLoop.Den.Degree() != 3 {
		t.Errorf("expected third-order open loop, got degree %d", r.OpenLoop.Den.Degree())
	}
}

func TestRunDisabledLeadLagIsIdentity(t *testing.T) {
	r := Run(defaultInput(), config.DefaultConfig())

	if len(r.LeadLag.Num) != 1 || r.LeadLag.Num[0] != 1 {
		t.Errorf("expected identity lead/lag, got %v/%v", r.LeadLag.Num, r.LeadLag.Den)
	}
	if r.LeadZeroOK || r.LeadPoleOK {
		t.Error("no markers expected when the element is disabled")
	}
}

func TestRunUnstablePlant(t *testing.T) {
	in := defaultInput()
	in.Den = "1, -1"

	r := Run(in, config.DefaultConfig())

	// 1/(s-1) with Kp=1 closes to 1/s: marginal, classified unstable.
	if r.Stability.Stable {
		t.Error("expected unstable classification for marginal pole")
	}
}

func TestRunDeterministic(t *testing.T) {
	cfg := config.DefaultConfig()
	a := Run(defaultInput(), cfg)
	b := Run(defaultInput(), cfg)

	for i := range a.Freq.Mag {
		if a.Freq.Mag[i] != b.Freq.Mag[i] || a.Freq.Phase[i] != b.Freq.Phase[i] {
			t.Fatalf("frequency response differs between identical runs at %d", i)
		}
	}
	if len(a.Bode.Ticks) != len(b.Bode.Ticks) {
		t.Fatal("annotation differs between identical runs")
	}
}
