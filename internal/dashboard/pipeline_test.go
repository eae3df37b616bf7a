package dashboard

import (
	"encoding/json"
	"testing/fstest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/radwaste/internal/dataset"
	"github.com/san-kum/radwaste/internal/nuclide"
	"github.com/san-kum/radwaste/internal/render"
	"github.com/san-kum/radwaste/internal/scenario"
	"github.com/san-kum/radwaste/internal/storage"
)

var _ = Describe("Dashboard", func() {
	var (
		fsys fstest.MapFS
		d    *Dashboard
	)

	newDashboard := func() *Dashboard {
		files, err := scenario.NewFiles(scenario.DefaultPattern)
		Expect(err).NotTo(HaveOccurred())
		return New(storage.New(fsys), nuclide.DefaultSources(), files)
	}

	BeforeEach(func() {
		fsys = dataFS()
		d = newDashboard()
	})

	Describe("Build", func() {
		It("renders the default selections", func() {
			m, err := d.Build(DefaultSelections())
			Expect(err).NotTo(HaveOccurred())

			Expect(m.Reference.IDs()).To(Equal([]string{"Am241", "Cm245", "Pu241", "Tl205"}))
			Expect(m.ScenarioFile).To(Equal("Answer_tc1k_tl1M.csv"))
			Expect(m.Times).To(Equal([]float64{1, 1000, 1000000}))
		})

		It("resolves onset 2000 years with completion 5 Million years to its own table", func() {
			sel, err := ParseSelections("", "2000 years", "5 Million years", "")
			Expect(err).NotTo(HaveOccurred())

			m, err := d.Build(sel)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.ScenarioFile).To(Equal("Answer_tc2k_tl5M.csv"))
			Expect(m.Inside.Values[0][0]).To(Equal(2005.0))
		})

		It("splits seven columns three inside and four outside", func() {
			m, err := d.Build(DefaultSelections())
			Expect(err).NotTo(HaveOccurred())

			Expect(m.Inside.Columns).To(Equal([]string{"a", "b", "c"}))
			Expect(m.Outside.Columns).To(Equal([]string{"d", "e", "f", "g"}))
			Expect(m.Inside.Index).To(Equal(m.Outside.Index))
		})

		It("orders the reference table by the chosen mode", func() {
			sel := DefaultSelections()
			sel.Sort = nuclide.ByQuantity

			m, err := d.Build(sel)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Reference.IDs()).To(Equal([]string{"Pu241", "Am241", "Cm245", "Tl205"}))
		})

		It("re-reads the data on every build", func() {
			_, err := d.Build(DefaultSelections())
			Expect(err).NotTo(HaveOccurred())

			fsys["initial_cond.csv"] = &fstest.MapFile{Data: []byte(",Moles\nU233,1\n")}
			m, err := d.Build(DefaultSelections())
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Reference.IDs()).To(ContainElement("U233"))
		})

		It("fails the whole render when a result file is missing", func() {
			delete(fsys, "Answer_tc1k_tl1M.csv")

			m, err := d.Build(DefaultSelections())
			Expect(m).To(BeNil())
			Expect(err).To(MatchError(dataset.ErrDataUnavailable))
		})

		It("fails the whole render when reference data is missing", func() {
			delete(fsys, "decay_cte_data.csv")

			_, err := d.Build(DefaultSelections())
			Expect(err).To(MatchError(dataset.ErrDataUnavailable))
		})

		It("rejects forged selections without defaulting", func() {
			sel := DefaultSelections()
			sel.Onset = scenario.Onset(12)

			_, err := d.Build(sel)
			Expect(err).To(MatchError(dataset.ErrSelectionOutOfRange))
		})

		It("summarizes both regions", func() {
			m, err := d.Build(DefaultSelections())
			Expect(err).NotTo(HaveOccurred())

			Expect(m.InsideStats).To(HaveLen(3))
			Expect(m.OutsideStats).To(HaveLen(4))
			Expect(m.OutsideStats[0].PeakTime).To(Equal(1000000.0))
		})

		It("encodes to JSON", func() {
			m, err := d.Build(DefaultSelections())
			Expect(err).NotTo(HaveOccurred())

			data, err := json.Marshal(m)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring(`"scenario_file":"Answer_tc1k_tl1M.csv"`))
			Expect(string(data)).To(ContainSubstring(`"onset":"1k"`))
			Expect(string(data)).To(ContainSubstring(`"moles":null`))
		})
	})

	Describe("Charts", func() {
		It("builds the reference and both concentration charts", func() {
			sel := DefaultSelections()
			sel.YScale = render.Log

			m, err := d.Build(sel)
			Expect(err).NotTo(HaveOccurred())

			charts := m.Charts()
			Expect(charts).To(HaveLen(3))

			ref := charts[0]
			Expect(ref.Categories).To(Equal(m.Reference.IDs()))
			Expect(ref.Y2).NotTo(BeNil())
			Expect(ref.Y2.Scale).To(Equal(render.Log))
			Expect(ref.Series[0].Kind).To(Equal(render.Bar))

			Expect(charts[1].Title).To(Equal(TitleInside))
			Expect(charts[1].Series).To(HaveLen(3))
			Expect(charts[1].X.Scale).To(Equal(render.Log))
			Expect(charts[1].Y.Scale).To(Equal(render.Log))
			Expect(charts[2].Title).To(Equal(TitleOutside))
			Expect(charts[2].Series).To(HaveLen(4))
		})
	})

	Describe("ParseSelections", func() {
		It("keeps defaults for empty values", func() {
			sel, err := ParseSelections("", "", "", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(sel).To(Equal(DefaultSelections()))
		})

		It("accepts labels and codes", func() {
			sel, err := ParseSelections("Decay Cte Order", "5k", "10000000", "Yes, please")
			Expect(err).NotTo(HaveOccurred())
			Expect(sel).To(Equal(Selections{
				Sort:       nuclide.ByDecayConstant,
				Onset:      scenario.Onset5000,
				Completion: scenario.Completion10M,
				YScale:     render.Log,
			}))
		})

		DescribeTable("rejects values outside the enumerations",
			func(sort, onset, completion, scale string) {
				_, err := ParseSelections(sort, onset, completion, scale)
				Expect(err).To(MatchError(dataset.ErrSelectionOutOfRange))
			},
			Entry("sort", "by-halflife", "", "", ""),
			Entry("onset", "", "4000", "", ""),
			Entry("completion", "", "", "3M", ""),
			Entry("scale", "", "", "", "sqrt"),
		)
	})
})
