package types

type NavbarData struct {
	IsAuthenticated bool
	IsStaff         bool
	UserID          string
	UserEmail       string
	UserName        string
}

type NavbarDataSetter interface {
	SetNavbarData(data NavbarData)
}

type BasePageData struct {
	Title  string
	Navbar NavbarData
}

func (d *BasePageData) SetNavbarData(data NavbarData) {
	d.Navbar = data
}

// Pagination drives the shared pager partial.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

func NewPagination(page, perPage, total int) Pagination {
	if page < 1 {
		page = 1
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

func (p Pagination) Offset() int       { return (p.Page - 1) * p.PerPage }
func (p Pagination) HasPrev() bool     { return p.Page > 1 }
func (p Pagination) HasNext() bool     { return p.Page < p.TotalPages }
func (p Pagination) PrevPage() int     { return p.Page - 1 }
func (p Pagination) NextPage() int     { return p.Page + 1 }
func (p Pagination) Paginated() bool   { return p.TotalPages > 1 }

// HomeStats backs the homepage counters. Zero counts are replaced with
// long-running totals so a fresh deployment doesn't render an empty site.
type HomeStats struct {
	TotalAdopted   int
	AvailableNow   int
	HappyFamilies  int
	YearsOfService int
}

type DashboardStats struct {
	PendingApplications int
	AvailablePets       int
	TotalAdopted        int
	UnreadMessages      int
}

type HomePageData struct {
	BasePageData
	Notice       string
	Error        string
	FeaturedPets []*Pet
	Stats        HomeStats
}

type PetListPageData struct {
	BasePageData
	Pets       []*Pet
	TotalPets  int
	Filters    PetFilters
	Sort       PetSort
	Pagination Pagination
}

type PetDetailPageData struct {
	BasePageData
	Pet         *Pet
	RelatedPets []*Pet
}

type StaticPageData struct {
	BasePageData
}

type ApplicationFormPageData struct {
	BasePageData
	Pet           *Pet
	AvailablePets []*Pet
	Form          ApplicationSubmission
	Error         string
	FieldErrors   map[string]string
}

type ContactPageData struct {
	BasePageData
	Notice      string
	Error       string
	FieldErrors map[string]string
	Name        string
	Email       string
	Phone       string
	Subject     string
	Message     string
}

type LoginPageData struct {
	BasePageData
	Message string
	Error   string
	Email   string
}

type RegisterPageData struct {
	BasePageData
	FirstName   string
	LastName    string
	Email       string
	Error       string
	FieldErrors map[string]string
}

type AccountPageData struct {
	BasePageData
	User               *User
	RecentApplications []*AdoptionApplication
	Notice             string
}

type UserApplicationsPageData struct {
	BasePageData
	Applications []*AdoptionApplication
}

type EditProfilePageData struct {
	BasePageData
	Form        UpdateUser
	Error       string
	FieldErrors map[string]string
}

type DashboardPageData struct {
	BasePageData
	Stats              DashboardStats
	RecentApplications []*AdoptionApplication
	RecentContacts     []*ContactMessage
}

type DashboardApplicationsPageData struct {
	BasePageData
	Applications []*AdoptionApplication
	Total        int
	Filters      ApplicationFilters
	Pagination   Pagination
	Notice       string
	Error        string
}

type DashboardApplicationDetailPageData struct {
	BasePageData
	Application *AdoptionApplication
	Notice      string
	Error       string
}

type DashboardPetsPageData struct {
	BasePageData
	Pets       []*Pet
	Total      int
	Filters    PetFilters
	Pagination Pagination
	Notice     string
	Error      string
}

type DashboardPetFormPageData struct {
	BasePageData
	Pet         *Pet
	Form        UpdatePet
	Error       string
	FieldErrors map[string]string
}

type DashboardContactsPageData struct {
	BasePageData
	Contacts   []*ContactMessage
	Total      int
	Filters    ContactFilters
	Pagination Pagination
	Notice     string
}

type DashboardContactDetailPageData struct {
	BasePageData
	Contact *ContactMessage
	Notice  string
}
