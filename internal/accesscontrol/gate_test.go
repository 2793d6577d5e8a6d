package accesscontrol_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/reformtrack/reform-management/internal"
	"github.com/reformtrack/reform-management/internal/accesscontrol"
	"github.com/reformtrack/reform-management/internal/audit"
)

var _ = Describe("Gate", func() {
	var (
		gate     *accesscontrol.Gate
		recorder *mockRecorder
		ctx      context.Context
	)

	principalWith := func(level accesscontrol.SecurityLevel) *accesscontrol.Principal {
		return &accesscontrol.Principal{
			ID:            7,
			Role:          accesscontrol.RoleTeamLeader,
			SecurityLevel: level,
			IsActive:      true,
		}
	}

	BeforeEach(func() {
		recorder = &mockRecorder{}
		gate = accesscontrol.NewGate(recorder, testLogger())
		ctx = context.Background()
	})

	It("returns an authentication error for a nil principal", func() {
		allowed, err := gate.CheckSecurityLevel(ctx, nil, accesscontrol.SecurityHigh)
		Expect(allowed).To(BeFalse())
		Expect(err).To(Equal(internal.ErrUnauthenticated))
		Expect(recorder.entries).To(BeEmpty())
	})

	DescribeTable("tier comparisons",
		func(user, required accesscontrol.SecurityLevel, want bool) {
			allowed, err := gate.CheckSecurityLevel(ctx, principalWith(user), required)
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(Equal(want))
		},
		Entry("limited vs limited", accesscontrol.SecurityLimited, accesscontrol.SecurityLimited, true),
		Entry("limited vs standard", accesscontrol.SecurityLimited, accesscontrol.SecurityStandard, false),
		Entry("limited vs high", accesscontrol.SecurityLimited, accesscontrol.SecurityHigh, false),
		Entry("standard vs standard", accesscontrol.SecurityStandard, accesscontrol.SecurityStandard, true),
		Entry("standard vs high", accesscontrol.SecurityStandard, accesscontrol.SecurityHigh, false),
		Entry("high vs high", accesscontrol.SecurityHigh, accesscontrol.SecurityHigh, true),
		Entry("high vs limited", accesscontrol.SecurityHigh, accesscontrol.SecurityLimited, true),
	)

	It("treats an unknown tier as standard", func() {
		allowed, err := gate.CheckSecurityLevel(ctx, principalWith("classified"), accesscontrol.SecurityStandard)
		Expect(err).NotTo(HaveOccurred())
		Expect(allowed).To(BeTrue())

		allowed, err = gate.CheckSecurityLevel(ctx, principalWith("classified"), accesscontrol.SecurityHigh)
		Expect(err).NotTo(HaveOccurred())
		Expect(allowed).To(BeFalse())
	})

	It("denies an inactive principal regardless of tier", func() {
		p := principalWith(accesscontrol.SecurityHigh)
		p.IsActive = false

		allowed, err := gate.CheckSecurityLevel(ctx, p, accesscontrol.SecurityLimited)
		Expect(err).NotTo(HaveOccurred())
		Expect(allowed).To(BeFalse())

		entry := recorder.last()
		Expect(entry.Action).To(Equal(audit.ActionSecurityLevelDenied))
		Expect(entry.Details["active"]).To(Equal(false))
	})

	It("audits a denial with both tiers and high severity", func() {
		allowed, err := gate.CheckSecurityLevel(ctx, principalWith(accesscontrol.SecurityStandard), accesscontrol.SecurityHigh)
		Expect(err).NotTo(HaveOccurred())
		Expect(allowed).To(BeFalse())

		entry := recorder.last()
		Expect(entry.Action).To(Equal(audit.ActionSecurityLevelDenied))
		Expect(entry.Severity).To(Equal(audit.SeverityHigh))
		Expect(entry.Details["requiredLevel"]).To(Equal("high"))
		Expect(entry.Details["userLevel"]).To(Equal("standard"))
	})

	It("audits a grant with info severity", func() {
		allowed, err := gate.CheckSecurityLevel(ctx, principalWith(accesscontrol.SecurityHigh), accesscontrol.SecurityHigh)
		Expect(err).NotTo(HaveOccurred())
		Expect(allowed).To(BeTrue())

		entry := recorder.last()
		Expect(entry.Action).To(Equal(audit.ActionSecurityLevelGranted))
		Expect(entry.Severity).To(Equal(audit.SeverityInfo))
	})
})
