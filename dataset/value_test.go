// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package dataset_test

import (
	"math"

	"github.com/goccy/go-json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvdash/dataset"
)

var _ = Describe("Value", func() {
	DescribeTable("ParseValue recognizes missing tokens",
		func(raw string) {
			Expect(dataset.ParseValue(raw).IsNull()).To(BeTrue())
		},
		Entry("empty", ""),
		Entry("whitespace", "   "),
		Entry("NA", "NA"),
		Entry("N/A", "N/A"),
		Entry("NaN", "NaN"),
		Entry("nan", "nan"),
		Entry("null", "null"),
		Entry("None", "None"),
		Entry("#N/A", "#N/A"),
		Entry("<NA>", "<NA>"),
	)

	DescribeTable("ParseValue reads numbers",
		func(raw string, expected float64) {
			val := dataset.ParseValue(raw)
			Expect(val.Kind()).To(Equal(dataset.Number))
			f, ok := val.Float()
			Expect(ok).To(BeTrue())
			Expect(f).To(Equal(expected))
		},
		Entry("integer", "2020", 2020.0),
		Entry("padded", " 42 ", 42.0),
		Entry("negative", "-3.5", -3.5),
		Entry("exponent", "1e3", 1000.0),
	)

	It("keeps text as written", func() {
		val := dataset.ParseValue("Acme Corp")
		Expect(val.Kind()).To(Equal(dataset.Text))
		Expect(val.String()).To(Equal("Acme Corp"))
		_, ok := val.Float()
		Expect(ok).To(BeFalse())
	})

	It("stores NaN numbers as null", func() {
		Expect(dataset.NumberValue(math.NaN()).IsNull()).To(BeTrue())
	})

	It("formats integral numbers without a fraction", func() {
		Expect(dataset.NumberValue(2021).String()).To(Equal("2021"))
		Expect(dataset.NumberValue(0.25).String()).To(Equal("0.25"))
		Expect(dataset.NumberValue(math.Inf(1)).String()).To(Equal("inf"))
		Expect(dataset.NullValue().String()).To(Equal(""))
	})

	It("treats null as equal to null", func() {
		Expect(dataset.NullValue().Equal(dataset.NullValue())).To(BeTrue())
		Expect(dataset.NullValue().Equal(dataset.NumberValue(0))).To(BeFalse())
		Expect(dataset.NumberValue(1).Equal(dataset.TextValue("1"))).To(BeFalse())
	})

	It("orders null before numbers before text", func() {
		Expect(dataset.NullValue().Compare(dataset.NumberValue(-100))).To(Equal(-1))
		Expect(dataset.NumberValue(5).Compare(dataset.TextValue("a"))).To(Equal(-1))
		Expect(dataset.NumberValue(5).Compare(dataset.NumberValue(3))).To(Equal(1))
		Expect(dataset.TextValue("b").Compare(dataset.TextValue("b"))).To(Equal(0))
	})

	It("marshals to JSON", func() {
		out, err := json.Marshal([]dataset.Value{
			dataset.NumberValue(1.5),
			dataset.TextValue("say \"hi\""),
			dataset.NullValue(),
			dataset.NumberValue(math.Inf(-1)),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(string(out)).To(Equal(`[1.5,"say \"hi\"",null,"-inf"]`))
	})
})
