package panel_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/carnot/internal/engine"
	"github.com/san-kum/carnot/internal/panel"
	"github.com/san-kum/carnot/internal/scene"
)

func typeString(c *panel.Controller, s string) {
	for _, r := range s {
		c.Type(r)
	}
}

var _ = Describe("Controller", func() {
	var (
		anim *engine.Animator
		ctrl *panel.Controller
	)

	BeforeEach(func() {
		var err error
		anim, err = engine.New(engine.DefaultParams(), 42)
		Expect(err).NotTo(HaveOccurred())
		ctrl = panel.NewController(anim, nil)
	})

	Context("with empty fields", func() {
		It("shows the waiting banner and does not move", func() {
			ctrl.Apply(panel.ActionStart)
			f := ctrl.Step()
			r := ctrl.Readout()

			Expect(f.Angle).To(Equal(engine.NeutralAngle))
			Expect(r.BannerVisible).To(BeTrue())
			Expect(r.Banner).To(Equal(panel.BannerWaiting))
			Expect(r.Stage).To(Equal(panel.NoGradient))
			Expect(r.StageColor).To(Equal(scene.LabelNeutral))
			Expect(r.Efficiency).To(Equal("0.0%"))
		})
	})

	Context("with the reference temperatures", func() {
		BeforeEach(func() {
			typeString(ctrl, "400")
			ctrl.Apply(panel.ActionFocusNext)
			typeString(ctrl, "300")
		})

		It("routes typing into the focused field", func() {
			Expect(anim.Inputs()).To(Equal(engine.Inputs{Hot: "400", Cold: "300"}))
		})

		It("reports 25.0% and clears the banner", func() {
			ctrl.Step()
			r := ctrl.Readout()
			Expect(r.Efficiency).To(Equal("25.0%"))
			Expect(r.BannerVisible).To(BeFalse())
			Expect(r.StageColor).To(Equal(scene.LabelActive))
		})

		It("advances by the derived speed once started", func() {
			ctrl.Apply(panel.ActionStart)
			f := ctrl.Step()
			Expect(f.Angle).To(BeNumerically("~", engine.NeutralAngle+0.015, 1e-12))
			Expect(f.Speed).To(BeNumerically("~", 0.015, 1e-12))
		})

		It("labels the stage from the crank angle", func() {
			ctrl.Step()
			Expect(ctrl.Readout().Stage).To(Equal("4. Adiabatic Compression"))
		})

		It("leaves the angle alone across two pauses", func() {
			ctrl.Apply(panel.ActionStart)
			for i := 0; i < 10; i++ {
				ctrl.Step()
			}
			ctrl.Apply(panel.ActionPause)
			a1 := ctrl.Step().Angle
			ctrl.Apply(panel.ActionPause)
			a2 := ctrl.Step().Angle

			Expect(anim.Running()).To(BeFalse())
			Expect(a2).To(Equal(a1))
		})

		It("toggles between running and paused", func() {
			ctrl.Apply(panel.ActionToggle)
			Expect(anim.Running()).To(BeTrue())
			ctrl.Apply(panel.ActionToggle)
			Expect(anim.Running()).To(BeFalse())
		})

		It("resumes from where it paused", func() {
			ctrl.Apply(panel.ActionStart)
			ctrl.Step()
			ctrl.Apply(panel.ActionPause)
			paused := ctrl.Step().Angle
			ctrl.Apply(panel.ActionResume)
			Expect(ctrl.Step().Angle).To(BeNumerically("~", paused+0.015, 1e-12))
		})
	})

	Context("when the cold reservoir is not colder", func() {
		It("halts at the neutral angle with the halted banner", func() {
			ctrl.SetInputs(engine.Inputs{Hot: "400", Cold: "300"})
			ctrl.Apply(panel.ActionStart)
			for i := 0; i < 30; i++ {
				ctrl.Step()
			}
			ctrl.SetField(panel.FieldCold, "500")
			f := ctrl.Step()

			Expect(f.Angle).To(Equal(engine.NeutralAngle))
			Expect(ctrl.Readout().Banner).To(Equal(panel.BannerHalted))
			Expect(ctrl.Readout().Stage).To(Equal(panel.NoGradient))
		})
	})

	Describe("reset", func() {
		It("clears the fields, stops, and shows the reset banner", func() {
			ctrl.SetInputs(engine.Inputs{Hot: "900", Cold: "100"})
			ctrl.Apply(panel.ActionStart)
			for i := 0; i < 25; i++ {
				ctrl.Step()
			}
			ctrl.Apply(panel.ActionReset)

			Expect(anim.Running()).To(BeFalse())
			Expect(anim.Inputs()).To(Equal(engine.Inputs{}))
			Expect(ctrl.Form().Value(panel.FieldHot)).To(BeEmpty())
			Expect(ctrl.Form().Focus()).To(Equal(panel.FieldHot))

			f := ctrl.Step()
			Expect(f.Angle).To(Equal(engine.NeutralAngle))
			Expect(ctrl.Readout().Banner).To(Equal(panel.BannerReset))
		})

		It("keeps the reset banner until started again", func() {
			ctrl.Apply(panel.ActionReset)
			for i := 0; i < 5; i++ {
				ctrl.Step()
			}
			Expect(ctrl.Readout().Banner).To(Equal(panel.BannerReset))

			ctrl.Apply(panel.ActionStart)
			ctrl.Step()
			Expect(ctrl.Readout().Banner).To(Equal(panel.BannerWaiting))
		})
	})

	Describe("clicking", func() {
		var layout panel.Layout

		BeforeEach(func() {
			layout = panel.NewLayout(anim.Params().Geometry)
		})

		It("focuses a field", func() {
			r := layout.Fields[panel.FieldCold]
			t := ctrl.Click(layout, r.X+1, r.Y+1)
			Expect(t.Kind).To(Equal(panel.TargetField))
			Expect(ctrl.Form().Focus()).To(Equal(panel.FieldCold))
		})

		It("presses a button", func() {
			for _, b := range layout.Buttons {
				if b.Action == panel.ActionStart {
					ctrl.Click(layout, b.Rect.X+b.Rect.W/2, b.Rect.Y+b.Rect.H/2)
				}
			}
			Expect(anim.Running()).To(BeTrue())
		})

		It("ignores the scene area", func() {
			t := ctrl.Click(layout, 10, 10)
			Expect(t.Kind).To(Equal(panel.TargetNone))
		})
	})
})

var _ = Describe("Form", func() {
	It("rejects characters that cannot be part of a number", func() {
		f := panel.NewForm(engine.Inputs{})
		Expect(f.Type('4')).To(BeTrue())
		Expect(f.Type('x')).To(BeFalse())
		Expect(f.Type('.')).To(BeTrue())
		Expect(f.Value(panel.FieldHot)).To(Equal("4."))
	})

	It("caps the field length", func() {
		f := panel.NewForm(engine.Inputs{})
		for i := 0; i < panel.MaxFieldLen+5; i++ {
			f.Type('9')
		}
		Expect(f.Value(panel.FieldHot)).To(HaveLen(panel.MaxFieldLen))
	})

	It("erases one character at a time", func() {
		f := panel.NewForm(engine.Inputs{Hot: "12"})
		f.Backspace()
		f.Backspace()
		f.Backspace()
		Expect(f.Value(panel.FieldHot)).To(BeEmpty())
	})
})

var _ = Describe("Readout", func() {
	DescribeTable("efficiency formatting",
		func(eff float64, want string) {
			Expect(panel.FormatEfficiency(eff)).To(Equal(want))
		},
		Entry("reference", 0.25, "25.0%"),
		Entry("zero", 0.0, "0.0%"),
		Entry("rounding", 0.2146, "21.5%"),
		Entry("near one", 0.9999, "100.0%"),
	)

	It("maps every status to its banner", func() {
		Expect(panel.BannerText(engine.StatusNone)).To(BeEmpty())
		Expect(panel.BannerText(engine.StatusWaiting)).To(Equal(panel.BannerWaiting))
		Expect(panel.BannerText(engine.StatusHalted)).To(Equal(panel.BannerHalted))
		Expect(panel.BannerText(engine.StatusReset)).To(Equal(panel.BannerReset))
	})

	It("uses the stage theme as accent", func() {
		a, _ := engine.New(engine.DefaultParams(), 1)
		a.SetInputs(engine.Inputs{Hot: "400", Cold: "300"})
		f := a.Step()
		Expect(f.Stage).To(Equal(engine.AdiabaticCompression))
		Expect(panel.Accent(f)).To(Equal(scene.ColdAccent))
		Expect(math.IsNaN(f.Efficiency)).To(BeFalse())
	})
})

var _ = Describe("Actions", func() {
	DescribeTable("parsing",
		func(name string, want panel.Action) {
			got, err := panel.ParseAction(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry(nil, "start", panel.ActionStart),
		Entry(nil, "Pause", panel.ActionPause),
		Entry(nil, " resume ", panel.ActionResume),
		Entry(nil, "reset", panel.ActionReset),
	)

	It("rejects unknown names", func() {
		_, err := panel.ParseAction("explode")
		Expect(err).To(MatchError(panel.ErrUnknownAction))
	})

	It("binds the default keys", func() {
		k := panel.DefaultKeyMap()
		Expect(k.Lookup("s")).To(Equal(panel.ActionStart))
		Expect(k.Lookup("r")).To(Equal(panel.ActionReset))
		Expect(k.Lookup("z")).To(Equal(panel.ActionNone))
	})
})
