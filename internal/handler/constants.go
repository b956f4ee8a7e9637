// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"
	// RouteSuffixEdit is the suffix for edit routes.
	RouteSuffixEdit = "/edit"
	// RouteSuffixDelete is the suffix for delete-confirmation routes.
	RouteSuffixDelete = "/delete"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteParamUID is the string UID parameter pattern.
	RouteParamUID = "/{uid}"

	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"

	// RouteCourses is the courses route.
	RouteCourses = "/courses"
	// RouteCategories is the categories route.
	RouteCategories = "/categories"
	// RouteSubCategories is the sub-categories route.
	RouteSubCategories = "/sub-categories"
	// RouteUsers is the users route.
	RouteUsers = "/users"
	// RouteTemplates is the templates route.
	RouteTemplates = "/templates"
	// RoutePayments is the payments route.
	RoutePayments = "/payments"
	// RouteOrders is the orders route.
	RouteOrders = "/orders"
	// RouteSettings is the settings route.
	RouteSettings = "/settings"
	// RouteLogo is the site logo route.
	RouteLogo = "/settings/logo"
	// RouteProfile is the admin profile route.
	RouteProfile = "/profile"
	// RoutePassword is the change-password route.
	RoutePassword = "/profile/password"

	// RouteCoursesID is the courses ID route pattern.
	RouteCoursesID = RouteCourses + RouteParamID
	// RouteCoursesIDEdit is the course edit route pattern.
	RouteCoursesIDEdit = RouteCoursesID + RouteSuffixEdit
	// RouteCoursesIDDelete is the course delete route pattern.
	RouteCoursesIDDelete = RouteCoursesID + RouteSuffixDelete
	// RouteCategoriesIDDelete is the category delete route pattern.
	RouteCategoriesIDDelete = RouteCategories + RouteParamID + RouteSuffixDelete
	// RouteSubCategoriesIDDelete is the sub-category delete route pattern.
	RouteSubCategoriesIDDelete = RouteSubCategories + RouteParamID + RouteSuffixDelete
	// RouteUsersUIDDelete is the user delete route pattern.
	RouteUsersUIDDelete = RouteUsers + RouteParamUID + RouteSuffixDelete
	// RouteTemplatesID is the templates ID route pattern.
	RouteTemplatesID = RouteTemplates + RouteParamID
	// RouteTemplatesIDEdit is the template edit route pattern.
	RouteTemplatesIDEdit = RouteTemplatesID + RouteSuffixEdit
	// RouteTemplatesIDDelete is the template delete route pattern.
	RouteTemplatesIDDelete = RouteTemplatesID + RouteSuffixDelete
)

const (
	redirectDashboard        = "/"
	redirectLogin            = RouteLogin
	redirectCourses          = RouteCourses
	redirectCoursesNew       = RouteCourses + RouteSuffixNew
	redirectCategories       = RouteCategories
	redirectSubCategories    = RouteSubCategories
	redirectUsers            = RouteUsers
	redirectTemplates        = RouteTemplates
	redirectTemplatesNew     = RouteTemplates + RouteSuffixNew
	redirectSettings         = RouteSettings
	redirectLogo             = RouteLogo
	redirectProfile          = RouteProfile
	redirectPassword         = RoutePassword

	redirectCoursesID       = RouteCourses + "/%d"
	redirectCoursesIDEdit   = redirectCoursesID + RouteSuffixEdit
	redirectTemplatesIDEdit = RouteTemplates + "/%d" + RouteSuffixEdit
)

// Items per page for each list screen.
const (
	CoursesPerPage       = 10
	CategoriesPerPage    = 10
	SubCategoriesPerPage = 10
	UsersPerPage         = 10
	TemplatesPerPage     = 10
	PaymentsPerPage      = 3
	OrdersPerPage        = 5
)
