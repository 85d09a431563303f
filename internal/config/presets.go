package config

// Presets are bundled example plants for the classroom: each seeds the
// input fields with a system worth poking at.
var Presets = map[string]*InputConfig{
	"second_order": {
		Num: "1", Den: "1, 2, 1",
		Controller: "P", Kp: 1, Ki: 1, Kd: 0.5, Z: 1, P: 2,
	},
	"underdamped": {
		Num: "1", Den: "1, 0.4, 1",
		Controller: "P", Kp: 1, Ki: 1, Kd: 0.5, Z: 1, P: 2,
	},
	"integrator": {
		Num: "1", Den: "1, 1, 0",
		Controller: "P", Kp: 1, Ki: 1, Kd: 0.5, Z: 1, P: 2,
	},
	"unstable": {
		Num: "1", Den: "1, -1",
		Controller: "P", Kp: 1, Ki: 1, Kd: 0.5, Z: 1, P: 2,
	},
	"zpk_demo": {
		Zeros: "-1", Poles: "-1, -3", ZPK: true,
		Controller: "P", Kp: 1, Ki: 1, Kd: 0.5, Z: 1, P: 2,
	},
	"pi_tracking": {
		Num: "1", Den: "1, 3, 2",
		Controller: "PI", Kp: 2, Ki: 1, Kd: 0.5, Z: 1, P: 2,
	},
	"lead_compensated": {
		Num: "1", Den: "1, 2, 1, 0",
		Controller: "P", Kp: 2, Ki: 1, Kd: 0.5,
		LeadLag: true, Z: 2, P: 0.5,
	},
}

func GetPreset(name string) *InputConfig {
	in, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *in
	fillPresetDefaults(&c)
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}

func fillPresetDefaults(in *InputConfig) {
	if in.Num == "" && !in.ZPK {
		in.Num = DefaultNum
	}
	if in.Den == "" && !in.ZPK {
		in.Den = DefaultDen
	}
	if in.Zeros == "" {
		in.Zeros = DefaultZeros
	}
	if in.Poles == "" {
		in.Poles = DefaultPoles
	}
	if in.Controller == "" {
		in.Controller = "P"
	}
}
