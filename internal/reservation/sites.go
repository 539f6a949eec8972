package reservation

// Site is one bookable facility in the fixed campus catalog.
type Site struct {
	ID   int
	Name string
	// LookaheadDays is how many days before the target date the booking
	// window for this site opens.
	LookaheadDays int
}

// The catalog is static campus data. IDs come from the upstream booking
// authority and are not assigned by this system.
var siteCatalog = []Site{
	{ID: 41, Name: "兴庆校区文体中心一楼羽毛球馆", LookaheadDays: 2},
	{ID: 42, Name: "兴庆校区文体中心三楼羽毛球场地", LookaheadDays: 2},
	{ID: 43, Name: "兴庆校区文体中心乒乓球馆", LookaheadDays: 2},
	{ID: 44, Name: "兴庆校区文体中心一楼健身房", LookaheadDays: 2},
	{ID: 50, Name: "雁塔校区财经乒乓球馆", LookaheadDays: 2},
	{ID: 51, Name: "医学校区网球场", LookaheadDays: 2},
	{ID: 52, Name: "兴庆校区东门网球场", LookaheadDays: 2},
	{ID: 53, Name: "兴庆校区风雨棚网球场", LookaheadDays: 2},
	{ID: 54, Name: "兴庆校区南门网球场", LookaheadDays: 2},
	{ID: 55, Name: "兴庆校区文体中心网球馆", LookaheadDays: 2},
	{ID: 56, Name: "兴庆校区文体中心壁球馆", LookaheadDays: 2},
	{ID: 82, Name: "创新港主楼网球场", LookaheadDays: 2},
	{ID: 101, Name: "创新港一号巨构羽毛球场", LookaheadDays: 2},
	{ID: 102, Name: "创新港一号巨构乒乓球台", LookaheadDays: 2},
	{ID: 103, Name: "创新港二号巨构羽毛球场", LookaheadDays: 2},
	{ID: 104, Name: "创新港三号巨构羽毛球场", LookaheadDays: 2},
	{ID: 105, Name: "创新港三号巨构乒乓球台", LookaheadDays: 2},
	{ID: 121, Name: "健身房（分时段限流）", LookaheadDays: 2},
	{ID: 161, Name: "测试场馆（勿订）", LookaheadDays: 2},
	{ID: 181, Name: "滚筒自行车骑行", LookaheadDays: 2},
	{ID: 301, Name: "兴庆校区东南网球场", LookaheadDays: 2},
}

var siteIndex = func() map[int]Site {
	m := make(map[int]Site, len(siteCatalog))
	for _, s := range siteCatalog {
		m[s.ID] = s
	}
	return m
}()

// Sites returns the full catalog in stable order.
func Sites() []Site {
	out := make([]Site, len(siteCatalog))
	copy(out, siteCatalog)
	return out
}

// ValidSite reports whether id belongs to the catalog.
func ValidSite(id int) bool {
	_, ok := siteIndex[id]
	return ok
}

// SiteName resolves a site id to its display name.
func SiteName(id int) string {
	if s, ok := siteIndex[id]; ok {
		return s.Name
	}
	return "Unknown Court"
}

// SiteLookahead returns how many days ahead of the target date the site's
// booking window opens. Unknown sites fall back to the common two days.
func SiteLookahead(id int) int {
	if s, ok := siteIndex[id]; ok {
		return s.LookaheadDays
	}
	return 2
}
