package accesscontrol_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/reformtrack/reform-management/internal/accesscontrol"
)

type mockRoleStore struct {
	mapping   map[accesscontrol.Role][]accesscontrol.Permission
	loadError error
}

func (m *mockRoleStore) LoadRolePermissions(ctx context.Context) (map[accesscontrol.Role][]accesscontrol.Permission, error) {
	if m.loadError != nil {
		return nil, m.loadError
	}
	return m.mapping, nil
}

func (m *mockRoleStore) ReplaceRolePermissions(ctx context.Context, role accesscontrol.Role, permissions []accesscontrol.Permission) error {
	if m.mapping == nil {
		m.mapping = make(map[accesscontrol.Role][]accesscontrol.Permission)
	}
	m.mapping[role] = permissions
	return nil
}

var _ = Describe("RoleTable", func() {
	It("loads the store's mapping on construction", func() {
		store := &mockRoleStore{mapping: map[accesscontrol.Role][]accesscontrol.Permission{
			accesscontrol.RoleViewer: {accesscontrol.PermTasksRead},
		}}

		table, err := accesscontrol.NewRoleTable(store, testLogger())
		Expect(err).NotTo(HaveOccurred())
		Expect(table.HasPermission(accesscontrol.RoleViewer, accesscontrol.PermTasksRead)).To(BeTrue())
		Expect(table.HasPermission(accesscontrol.RoleViewer, accesscontrol.PermTasksCreate)).To(BeFalse())
	})

	It("falls back to built-in defaults when the store is empty", func() {
		table, err := accesscontrol.NewRoleTable(&mockRoleStore{}, testLogger())
		Expect(err).NotTo(HaveOccurred())
		Expect(table.HasPermission(accesscontrol.RoleMember, accesscontrol.PermTasksCreate)).To(BeTrue())
		Expect(table.HasPermission(accesscontrol.RoleViewer, accesscontrol.PermTasksCreate)).To(BeFalse())
	})

	It("surfaces store errors on construction", func() {
		_, err := accesscontrol.NewRoleTable(&mockRoleStore{loadError: errors.New("db down")}, testLogger())
		Expect(err).To(HaveOccurred())
	})

	It("makes replaced grants visible immediately", func() {
		store := &mockRoleStore{mapping: map[accesscontrol.Role][]accesscontrol.Permission{
			accesscontrol.RoleViewer: {accesscontrol.PermTasksRead},
		}}
		table, err := accesscontrol.NewRoleTable(store, testLogger())
		Expect(err).NotTo(HaveOccurred())

		err = table.Replace(context.Background(), accesscontrol.RoleViewer, []accesscontrol.Permission{
			accesscontrol.PermTasksRead, accesscontrol.PermReportsRead,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(table.HasPermission(accesscontrol.RoleViewer, accesscontrol.PermReportsRead)).To(BeTrue())
	})

	It("knows nothing about unknown roles", func() {
		table := accesscontrol.NewStaticRoleTable(accesscontrol.DefaultRolePermissions(), testLogger())
		Expect(table.HasPermission("inspector", accesscontrol.PermTasksRead)).To(BeFalse())
		Expect(table.Grants("inspector")).To(BeNil())
	})

	It("returns sorted grants and roles", func() {
		table := accesscontrol.NewStaticRoleTable(accesscontrol.DefaultRolePermissions(), testLogger())

		grants := table.Grants(accesscontrol.RoleViewer)
		for i := 1; i < len(grants); i++ {
			Expect(string(grants[i-1]) < string(grants[i])).To(BeTrue())
		}

		roles := table.Roles()
		Expect(roles).To(HaveLen(4))
	})

	Describe("default role grants", func() {
		var table *accesscontrol.RoleTable

		BeforeEach(func() {
			table = accesscontrol.NewStaticRoleTable(accesscontrol.DefaultRolePermissions(), testLogger())
		})

		It("grants sp every known permission", func() {
			for _, perm := range accesscontrol.AllPermissions {
				Expect(table.HasPermission(accesscontrol.RoleSP, perm)).To(BeTrue(), "sp should hold %s", perm)
			}
		})

		It("keeps administrative keys away from non-sp roles", func() {
			for _, role := range []accesscontrol.Role{accesscontrol.RoleTeamLeader, accesscontrol.RoleMember, accesscontrol.RoleViewer} {
				Expect(table.HasPermission(role, accesscontrol.PermUsersManage)).To(BeFalse())
				Expect(table.HasPermission(role, accesscontrol.PermRolesManage)).To(BeFalse())
				Expect(table.HasPermission(role, accesscontrol.PermAuditRead)).To(BeFalse())
				Expect(table.HasPermission(role, accesscontrol.PermSettingsManage)).To(BeFalse())
			}
		})

		It("lets team leaders review budgets but not create requests", func() {
			Expect(table.HasPermission(accesscontrol.RoleTeamLeader, accesscontrol.PermBudgetApprove)).To(BeTrue())
			Expect(table.HasPermission(accesscontrol.RoleTeamLeader, accesscontrol.PermBudgetReject)).To(BeTrue())
			Expect(table.HasPermission(accesscontrol.RoleTeamLeader, accesscontrol.PermBudgetCreate)).To(BeFalse())
			Expect(table.HasPermission(accesscontrol.RoleMember, accesscontrol.PermBudgetApprove)).To(BeFalse())
		})
	})
})
